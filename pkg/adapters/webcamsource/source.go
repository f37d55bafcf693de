// Package webcamsource reads frames from a V4L2 device such as the
// Kinect's gspca RGB and IR nodes.
package webcamsource

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blackjack/webcam"
	"github.com/pkg/errors"

	"github.com/user/kinectlapse/pkg/frame"
	"github.com/user/kinectlapse/pkg/ports"
)

// Options configures the capture session.
type Options struct {
	Width  uint32
	Height uint32
	// BufferCount is the number of driver buffers; zero keeps the driver default.
	BufferCount uint32
	// FrameTimeout bounds a single WaitForFrame call. It is rounded up to
	// whole seconds. Timeouts are retried until ctx is done.
	FrameTimeout time.Duration
}

// DefaultOptions returns the Kinect's native 640x480 mode.
func DefaultOptions() Options {
	return Options{
		Width:        640,
		Height:       480,
		BufferCount:  2,
		FrameTimeout: time.Second,
	}
}

// camera is the subset of *webcam.Webcam used here.
type camera interface {
	GetSupportedFormats() map[webcam.PixelFormat]string
	GetSupportedFrameSizes(webcam.PixelFormat) []webcam.FrameSize
	SetImageFormat(webcam.PixelFormat, uint32, uint32) (webcam.PixelFormat, uint32, uint32, error)
	SetBufferCount(uint32) error
	StartStreaming() error
	StopStreaming() error
	WaitForFrame(uint32) error
	ReadFrame() ([]byte, error)
	Close() error
}

var openCamera = func(device string) (camera, error) {
	return webcam.Open(device)
}

// Source implements ports.FrameSource on top of a V4L2 device.
type Source struct {
	mu      sync.Mutex
	device  string
	opts    Options
	cam     camera
	logger  ports.Logger
	opened  time.Time
	current frame.PixelFormat
	mode    frame.Mode
	running bool
}

// Open opens the device. Streaming starts with the first snapshot.
func Open(device string, opts Options, logger ports.Logger) (*Source, error) {
	logger = logger.WithComponent("webcam")
	logger.Debug("Opening device %s", device)

	cam, err := openCamera(device)
	if err != nil {
		return nil, errors.Wrapf(err, "can not open device %s", device)
	}
	return &Source{
		device: device,
		opts:   opts,
		cam:    cam,
		logger: logger,
		opened: time.Now(),
	}, nil
}

// TakeSnapshot blocks until the device delivers a frame. The frame's mode
// reflects what the driver granted, which may differ from format.
func (s *Source) TakeSnapshot(ctx context.Context, format frame.PixelFormat) (*frame.RawFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || format != s.current {
		if err := s.negotiate(format); err != nil {
			return nil, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := s.cam.WaitForFrame(s.waitSeconds())
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			s.logger.Debug("Frame wait timed out, retrying")
			continue
		default:
			return nil, errors.Wrap(err, "frame wait failed")
		}

		data, err := s.cam.ReadFrame()
		if err != nil {
			return nil, errors.Wrap(err, "read frame failed")
		}
		if len(data) == 0 {
			continue
		}

		// ReadFrame returns a view into the mmap'd driver buffer.
		buf := make([]byte, len(data))
		copy(buf, data)
		return frame.New(s.mode, buf, time.Since(s.opened).Milliseconds()), nil
	}
}

func (s *Source) negotiate(format frame.PixelFormat) error {
	code, ok := requested[format]
	if !ok {
		return errors.Errorf("no V4L2 pixel format for %s", format)
	}

	if s.running {
		s.logger.Debug("Stopping stream")
		if err := s.cam.StopStreaming(); err != nil {
			return errors.Wrap(err, "can not stop streaming")
		}
		s.running = false
	}

	got, w, h, err := s.cam.SetImageFormat(code, s.opts.Width, s.opts.Height)
	if err != nil {
		return errors.Wrapf(err, "can not set format %s %dx%d", fourccString(code), s.opts.Width, s.opts.Height)
	}
	s.mode = frame.Mode{Width: int(w), Height: int(h), Format: formatOf(got)}
	s.current = format
	s.logger.Debug("Negotiated %s %dx%d (requested %s)", fourccString(got), w, h, fourccString(code))

	if s.opts.BufferCount > 0 {
		if err := s.cam.SetBufferCount(s.opts.BufferCount); err != nil {
			return errors.Wrap(err, "can not set buffer count")
		}
	}

	s.logger.Debug("Starting stream")
	if err := s.cam.StartStreaming(); err != nil {
		return errors.Wrap(err, "can not start streaming")
	}
	s.running = true
	return nil
}

func (s *Source) waitSeconds() uint32 {
	secs := uint32((s.opts.FrameTimeout + time.Second - 1) / time.Second)
	if secs == 0 {
		secs = 1
	}
	return secs
}

// FormatInfo describes one pixel format offered by the device.
type FormatInfo struct {
	FourCC      string
	Description string
	Format      frame.PixelFormat
	Sizes       []string
}

// Formats lists the pixel formats and frame sizes the device supports,
// ordered by fourcc.
func (s *Source) Formats() []FormatInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	var infos []FormatInfo
	for code, desc := range s.cam.GetSupportedFormats() {
		info := FormatInfo{
			FourCC:      fourccString(code),
			Description: desc,
			Format:      formatOf(code),
		}
		for _, size := range s.cam.GetSupportedFrameSizes(code) {
			info.Sizes = append(info.Sizes, size.GetString())
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].FourCC < infos[j].FourCC })
	return infos
}

// Close stops streaming and releases the device.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Debug("Stopping stream")
		if err := s.cam.StopStreaming(); err != nil {
			_ = s.cam.Close()
			return errors.Wrap(err, "can not stop streaming")
		}
		s.running = false
	}
	return s.cam.Close()
}

var _ ports.FrameSource = (*Source)(nil)
