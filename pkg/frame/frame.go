package frame

import (
	"fmt"
	"image"
	"sync"
)

// Mode is the metadata that accompanies the bytes of a frame.
type Mode struct {
	Width  int
	Height int
	Format PixelFormat
}

// MaxDimension bounds each side of a frame. Modes read back from a raw log
// are untrusted, and the bound keeps FrameSize from overflowing.
const MaxDimension = 1 << 14

// Validate checks that the dimensions are positive and at most MaxDimension.
func (m Mode) Validate() error {
	if m.Width <= 0 || m.Height <= 0 || m.Width > MaxDimension || m.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidMode, m.Width, m.Height)
	}
	return nil
}

// FrameSize returns the number of bytes a complete frame occupies.
func (m Mode) FrameSize() int {
	return m.Width * m.Height * m.Format.BytesPerPixel()
}

// RawFrame is one unit of sensor output. It is immutable once created;
// the decoded image is computed at most once and shared by all callers.
type RawFrame struct {
	mode      Mode
	data      []byte
	timestamp int64

	decoded decodeOnce
}

type decodeOnce struct {
	once sync.Once
	img  *image.RGBA
	ok   bool
	err  error
}

// New creates a frame. The frame takes ownership of data; the caller must
// not modify it afterwards.
func New(mode Mode, data []byte, timestamp int64) *RawFrame {
	return &RawFrame{
		mode:      mode,
		data:      data,
		timestamp: timestamp,
	}
}

// Mode returns the frame metadata.
func (f *RawFrame) Mode() Mode {
	return f.mode
}

// Data returns the raw bytes. The slice must be treated as read-only.
func (f *RawFrame) Data() []byte {
	return f.data
}

// Timestamp returns the sensor-relative timestamp in milliseconds.
func (f *RawFrame) Timestamp() int64 {
	return f.timestamp
}

// Image decodes the frame. ok is false, with a nil error, when the format
// is recognized but not decodable; callers should skip such frames.
// The result is cached: later calls return the same image without
// decoding again. The returned image must not be modified.
func (f *RawFrame) Image() (img *image.RGBA, ok bool, err error) {
	d := &f.decoded
	d.once.Do(func() {
		d.img, d.ok, d.err = decodeFunc(f.mode, f.data)
	})
	return d.img, d.ok, d.err
}

// decodeFunc is swapped in tests to count decodes.
var decodeFunc = Decode
