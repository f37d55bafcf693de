package rawlog

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/kinectlapse/pkg/frame"
	"github.com/user/kinectlapse/pkg/ports"
)

// Writer appends frames to a log file. It is safe for concurrent use.
type Writer struct {
	mu   sync.Mutex
	path string
	f    *os.File
	w    *bufio.Writer
	now  func() time.Time
}

// NewWriter creates dir if needed and opens a new log named
// YYYYMMDD_HHMMSS_<prefix>.bin inside it.
func NewWriter(dir, prefix string) (*Writer, error) {
	return newWriter(dir, prefix, time.Now)
}

func newWriter(dir, prefix string, now func() time.Time) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create raw log dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.bin", now().Format("20060102_150405"), prefix))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create raw log: %w", err)
	}
	w := bufio.NewWriterSize(f, 1024*1024)
	if _, err := w.WriteString(magic); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{path: path, f: f, w: w, now: now}, nil
}

// Path returns the file the writer appends to.
func (r *Writer) Path() string {
	return r.path
}

// Enabled returns true.
func (r *Writer) Enabled() bool {
	return true
}

// Record appends one frame and flushes it to disk.
func (r *Writer) Record(f *frame.RawFrame) error {
	body, err := marshalFrame(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil {
		return ErrClosed
	}
	var header [headerSize]byte
	binary.LittleEndian.PutUint64(header[:8], uint64(r.now().UnixNano()))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(body)))
	if _, err := r.w.Write(header[:]); err != nil {
		return err
	}
	if _, err := r.w.Write(body); err != nil {
		return err
	}
	return r.w.Flush()
}

// Close flushes and closes the file. Closing twice is a no-op.
func (r *Writer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil {
		return nil
	}
	if err := r.w.Flush(); err != nil {
		_ = r.f.Close()
		r.w = nil
		return err
	}
	err := r.f.Close()
	r.w = nil
	return err
}

var _ ports.FrameRecorder = (*Writer)(nil)
