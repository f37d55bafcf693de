package pipeline

import (
	"context"
	"image"
	"time"
)

// RenderOptions controls post-processing of a decoded frame before it is saved.
type RenderOptions struct {
	MaxWidth      int    // Downscale to at most this width (0 = no limit)
	MaxHeight     int    // Downscale to at most this height (0 = no limit)
	Caption       bool   // Draw the capture time along the bottom edge
	CaptionFormat string // time layout for the caption (default: 2006-01-02 15:04:05)
}

// DefaultCaptionFormat is the layout used when RenderOptions.CaptionFormat is empty.
const DefaultCaptionFormat = "2006-01-02 15:04:05"

// Enabled reports whether any post-processing is requested.
func (o RenderOptions) Enabled() bool {
	return o.MaxWidth > 0 || o.MaxHeight > 0 || o.Caption
}

// RenderInput is a decoded frame plus the time it was captured.
type RenderInput struct {
	Image      image.Image
	CapturedAt time.Time
}

// RenderStage is the stage signature the capture controller expects.
type RenderStage = Stage[RenderInput, image.Image]

// Passthrough is a RenderStage that returns its input image unchanged.
var Passthrough RenderStage = StageFunc[RenderInput, image.Image](
	func(ctx context.Context, input RenderInput) (image.Image, error) {
		return input.Image, nil
	},
)
