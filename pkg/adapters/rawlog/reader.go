package rawlog

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/user/kinectlapse/pkg/frame"
)

// Entry is one decoded record.
type Entry struct {
	// Logged is when the writer appended the record.
	Logged time.Time
	// Size is the payload length in bytes.
	Size  int
	Frame *frame.RawFrame
}

// Reader reads records sequentially.
type Reader struct {
	r     *bufio.Reader
	index int
}

// NewReader checks the magic and returns a Reader positioned at the first record.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(br, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, err
	}
	if string(header) != magic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, header)
	}
	return &Reader{r: br}, nil
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Entry, error) {
	var meta [headerSize]byte
	if _, err := io.ReadFull(r.r, meta[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Entry{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Entry{}, fmt.Errorf("%w: record %d header", ErrTruncatedRecord, r.index)
		}
		return Entry{}, err
	}

	ts := int64(binary.LittleEndian.Uint64(meta[:8]))
	size := binary.LittleEndian.Uint32(meta[8:12])
	if size > maxPayload {
		return Entry{}, fmt.Errorf("%w: record %d claims %d bytes", ErrRecordTooLarge, r.index, size)
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r.r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Entry{}, fmt.Errorf("%w: record %d payload", ErrTruncatedRecord, r.index)
		}
		return Entry{}, err
	}

	f, err := unmarshalFrame(body)
	if err != nil {
		return Entry{}, fmt.Errorf("record %d: %w", r.index, err)
	}
	r.index++
	return Entry{Logged: time.Unix(0, ts), Size: int(size), Frame: f}, nil
}
