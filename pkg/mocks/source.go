// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/user/kinectlapse/pkg/frame"
	"github.com/user/kinectlapse/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource.
type FrameSource struct {
	mu sync.Mutex

	TakeSnapshotFunc func(ctx context.Context, format frame.PixelFormat) (*frame.RawFrame, error)
	CloseFunc        func() error

	// Recorded calls for verification
	Requested   []frame.PixelFormat
	CloseCalled bool
}

// NewRGBSource returns a source that yields solid 2x2 frames in the
// requested format.
func NewRGBSource() *FrameSource {
	return &FrameSource{
		TakeSnapshotFunc: func(ctx context.Context, format frame.PixelFormat) (*frame.RawFrame, error) {
			mode := frame.Mode{Width: 2, Height: 2, Format: format}
			return frame.New(mode, make([]byte, mode.FrameSize()), 0), nil
		},
	}
}

func (m *FrameSource) TakeSnapshot(ctx context.Context, format frame.PixelFormat) (*frame.RawFrame, error) {
	m.mu.Lock()
	m.Requested = append(m.Requested, format)
	m.mu.Unlock()
	if m.TakeSnapshotFunc != nil {
		return m.TakeSnapshotFunc(ctx, format)
	}
	return frame.New(frame.Mode{Width: 1, Height: 1, Format: format}, []byte{0, 0, 0}, 0), nil
}

func (m *FrameSource) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns the number of TakeSnapshot calls so far.
func (m *FrameSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requested)
}

var _ ports.FrameSource = (*FrameSource)(nil)
