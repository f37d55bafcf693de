package frame

import (
	"fmt"
	"image"
)

// Decode converts raw bytes described by mode into an RGB image.
// Unsupported formats yield ok == false and no error, whatever the data.
// Data shorter than the mode requires yields ErrTruncatedFrame; trailing
// bytes beyond a full frame are ignored.
func Decode(mode Mode, data []byte) (*image.RGBA, bool, error) {
	if !mode.Format.Supported() {
		return nil, false, nil
	}
	if err := mode.Validate(); err != nil {
		return nil, false, err
	}
	if need := mode.FrameSize(); len(data) < need {
		return nil, false, fmt.Errorf("%w: %s %dx%d needs %d bytes, got %d",
			ErrTruncatedFrame, mode.Format, mode.Width, mode.Height, need, len(data))
	}

	img := image.NewRGBA(image.Rect(0, 0, mode.Width, mode.Height))
	switch mode.Format {
	case RGB24:
		decodeRGB24(img, mode, data)
	case IRGray8:
		decodeGray8(img, mode, data)
	}
	return img, true, nil
}

func decodeRGB24(img *image.RGBA, mode Mode, data []byte) {
	for y := 0; y < mode.Height; y++ {
		for x := 0; x < mode.Width; x++ {
			src := (y*mode.Width + x) * 3
			dst := img.PixOffset(x, y)
			img.Pix[dst+0] = data[src+0]
			img.Pix[dst+1] = data[src+1]
			img.Pix[dst+2] = data[src+2]
			img.Pix[dst+3] = 0xff
		}
	}
}

func decodeGray8(img *image.RGBA, mode Mode, data []byte) {
	for y := 0; y < mode.Height; y++ {
		for x := 0; x < mode.Width; x++ {
			g := data[y*mode.Width+x]
			dst := img.PixOffset(x, y)
			img.Pix[dst+0] = g
			img.Pix[dst+1] = g
			img.Pix[dst+2] = g
			img.Pix[dst+3] = 0xff
		}
	}
}
