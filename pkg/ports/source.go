// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"

	"github.com/user/kinectlapse/pkg/frame"
)

// FrameSource abstracts a sensor session that yields raw frames on demand.
type FrameSource interface {
	// TakeSnapshot blocks until one frame in the requested format is
	// available. The returned frame may carry a different format when the
	// device could not honour the request.
	TakeSnapshot(ctx context.Context, format frame.PixelFormat) (*frame.RawFrame, error)

	// Close ends the session and releases the device.
	Close() error
}
