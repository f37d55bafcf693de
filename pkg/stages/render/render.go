// Package render implements the post-decode stage that resizes and captions frames.
package render

import (
	"context"
	"image"

	"github.com/user/kinectlapse/pkg/pipeline"
	"github.com/user/kinectlapse/pkg/ports"
)

// Stage downscales and captions decoded frames. The input image is never
// modified because it is the frame's cached decode result.
type Stage struct {
	renderer ports.Renderer
	opts     pipeline.RenderOptions
	logger   ports.Logger
}

// NewStage creates a new render stage.
func NewStage(renderer ports.Renderer, opts pipeline.RenderOptions, logger ports.Logger) *Stage {
	if opts.CaptionFormat == "" {
		opts.CaptionFormat = pipeline.DefaultCaptionFormat
	}
	return &Stage{
		renderer: renderer,
		opts:     opts,
		logger:   logger.WithComponent("render"),
	}
}

// Execute applies the configured resize and caption.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := input.Image
	b := img.Bounds()
	if w, h := FitWithin(b.Dx(), b.Dy(), s.opts.MaxWidth, s.opts.MaxHeight); w != b.Dx() || h != b.Dy() {
		s.logger.Debug("Resizing %dx%d to %dx%d", b.Dx(), b.Dy(), w, h)
		img = s.renderer.ResizeImage(img, w, h)
	}

	if s.opts.Caption {
		img = s.renderer.DrawCaption(img, input.CapturedAt.Format(s.opts.CaptionFormat))
	}

	return img, nil
}

// FitWithin scales width x height down to fit inside maxW x maxH while
// keeping the aspect ratio. A zero limit is ignored. Images are never
// scaled up, and neither side drops below one pixel.
func FitWithin(width, height, maxW, maxH int) (int, int) {
	scale := 1.0
	if maxW > 0 && width > maxW {
		scale = float64(maxW) / float64(width)
	}
	if maxH > 0 && height > maxH {
		if s := float64(maxH) / float64(height); s < scale {
			scale = s
		}
	}
	if scale == 1.0 {
		return width, height
	}
	w := int(float64(width)*scale + 0.5)
	h := int(float64(height)*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

var _ pipeline.RenderStage = (*Stage)(nil)
