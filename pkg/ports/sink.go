package ports

import (
	"image"

	"github.com/user/kinectlapse/pkg/frame"
)

// ImageSink persists decoded images.
type ImageSink interface {
	// Save encodes img and stores it as name inside dir.
	Save(img image.Image, dir, name string) error

	// Extension returns the file extension (without dot) of saved images.
	Extension() string
}

// FrameRecorder keeps raw frames for later replay or inspection.
type FrameRecorder interface {
	// Enabled returns true if frames are actually recorded.
	Enabled() bool

	// Record stores one raw frame.
	Record(f *frame.RawFrame) error

	// Close flushes and releases the recorder.
	Close() error
}
