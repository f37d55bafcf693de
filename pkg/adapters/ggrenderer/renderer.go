// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/user/kinectlapse/pkg/ports"
)

// Caption layout in pixels.
const (
	captionPadding = 6
	captionMargin  = 4
)

var (
	captionBackground = color.RGBA{A: 160}
	captionForeground = color.White
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode BMP: %w", err)
		}
	case ports.FormatTIFF:
		opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
		if err := tiff.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode TIFF: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// DrawCaption draws text on a translucent bar in the bottom-left corner.
// The source image is left untouched.
func (r *Renderer) DrawCaption(img image.Image, text string) image.Image {
	if text == "" {
		return img
	}

	dc := gg.NewContextForImage(img)
	w, h := dc.MeasureString(text)
	height := float64(dc.Height())

	dc.SetColor(captionBackground)
	dc.DrawRectangle(
		captionMargin,
		height-captionMargin-h-2*captionPadding,
		w+2*captionPadding,
		h+2*captionPadding,
	)
	dc.Fill()

	dc.SetColor(captionForeground)
	dc.DrawStringAnchored(text, captionMargin+captionPadding, height-captionMargin-captionPadding-h/2, 0, 0.5)

	return dc.Image()
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
