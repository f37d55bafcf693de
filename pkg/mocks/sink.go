package mocks

import (
	"image"
	"path/filepath"
	"sync"

	"github.com/user/kinectlapse/pkg/frame"
	"github.com/user/kinectlapse/pkg/ports"
)

// ImageSink is a mock implementation of ports.ImageSink.
type ImageSink struct {
	mu sync.RWMutex

	SaveFunc func(img image.Image, dir, name string) error
	Ext      string

	// Saved holds the paths of successful saves, in order.
	Saved []string
	// Calls counts every Save call, failed or not.
	Calls int
}

// NewImageSink creates a new mock ImageSink that accepts every image.
func NewImageSink() *ImageSink {
	return &ImageSink{Ext: "jpg"}
}

func (m *ImageSink) Save(img image.Image, dir, name string) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		if err := m.SaveFunc(img, dir, name); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, filepath.Join(dir, name))
	return nil
}

func (m *ImageSink) Extension() string {
	if m.Ext == "" {
		return "jpg"
	}
	return m.Ext
}

// SavedPaths returns a copy of the saved paths (for test verification).
func (m *ImageSink) SavedPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.Saved...)
}

var _ ports.ImageSink = (*ImageSink)(nil)

// FrameRecorder is a mock implementation of ports.FrameRecorder.
type FrameRecorder struct {
	mu sync.Mutex

	enabled bool

	RecordFunc func(f *frame.RawFrame) error
	Frames     []*frame.RawFrame
	Closed     bool
}

// NewFrameRecorder creates a new mock FrameRecorder.
func NewFrameRecorder(enabled bool) *FrameRecorder {
	return &FrameRecorder{enabled: enabled}
}

func (m *FrameRecorder) Enabled() bool {
	return m.enabled
}

func (m *FrameRecorder) Record(f *frame.RawFrame) error {
	if m.RecordFunc != nil {
		if err := m.RecordFunc(f); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames = append(m.Frames, f)
	return nil
}

func (m *FrameRecorder) Close() error {
	m.Closed = true
	return nil
}

var _ ports.FrameRecorder = (*FrameRecorder)(nil)
