package mocks

import (
	"image"

	"github.com/user/kinectlapse/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image
	DrawCaptionFunc func(img image.Image, text string) image.Image

	// Recorded calls for verification
	Captions []string
	Resizes  []image.Point
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.Resizes = append(m.Resizes, image.Pt(width, height))
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) DrawCaption(img image.Image, text string) image.Image {
	m.Captions = append(m.Captions, text)
	if m.DrawCaptionFunc != nil {
		return m.DrawCaptionFunc(img, text)
	}
	b := img.Bounds()
	return image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
}

var _ ports.Renderer = (*Renderer)(nil)
