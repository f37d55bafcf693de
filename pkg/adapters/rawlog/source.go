package rawlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/user/kinectlapse/pkg/frame"
	"github.com/user/kinectlapse/pkg/ports"
)

// ErrEmptyLog is returned by a looping Source whose log holds no records.
var ErrEmptyLog = errors.New("rawlog: log has no records")

// Source replays a log as a ports.FrameSource. Frames keep the mode they
// were recorded with, so the requested format is ignored.
type Source struct {
	mu     sync.Mutex
	f      *os.File
	reader *Reader
	loop   bool
	served int
}

// Open opens path for replay. With loop set the log restarts from the
// first record instead of returning io.EOF.
func Open(path string, loop bool) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw log: %w", err)
	}
	reader, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Source{f: f, reader: reader, loop: loop}, nil
}

// TakeSnapshot returns the next recorded frame.
func (s *Source) TakeSnapshot(ctx context.Context, _ frame.PixelFormat) (*frame.RawFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.reader.Next()
	if errors.Is(err, io.EOF) && s.loop {
		if s.served == 0 {
			return nil, ErrEmptyLog
		}
		if err := s.rewind(); err != nil {
			return nil, err
		}
		s.served = 0
		entry, err = s.reader.Next()
	}
	if err != nil {
		return nil, err
	}
	s.served++
	return entry.Frame, nil
}

func (s *Source) rewind() error {
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind raw log: %w", err)
	}
	reader, err := NewReader(s.f)
	if err != nil {
		return err
	}
	s.reader = reader
	return nil
}

// Close closes the log file.
func (s *Source) Close() error {
	return s.f.Close()
}

var _ ports.FrameSource = (*Source)(nil)
