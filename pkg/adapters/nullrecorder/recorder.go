// Package nullrecorder provides a no-op frame recorder implementation.
package nullrecorder

import (
	"github.com/user/kinectlapse/pkg/frame"
	"github.com/user/kinectlapse/pkg/ports"
)

// Recorder is a no-op implementation of ports.FrameRecorder.
// It discards all frames.
type Recorder struct{}

// New creates a new Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Enabled returns false as this recorder discards all frames.
func (r *Recorder) Enabled() bool {
	return false
}

// Record does nothing.
func (r *Recorder) Record(f *frame.RawFrame) error {
	return nil
}

// Close does nothing.
func (r *Recorder) Close() error {
	return nil
}

// Ensure Recorder implements ports.FrameRecorder
var _ ports.FrameRecorder = (*Recorder)(nil)
