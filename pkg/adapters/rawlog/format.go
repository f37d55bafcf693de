// Package rawlog records raw sensor frames to an append-only binary log and
// replays them.
//
// A log starts with the 8-byte magic "KLAPRAW1" followed by records of
//
//	[unix nanos u64 LE][payload length u32 LE][CBOR payload]
//
// where the payload carries the frame mode and bytes.
package rawlog

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/user/kinectlapse/pkg/frame"
)

const (
	magic      = "KLAPRAW1"
	headerSize = 12

	// maxPayload bounds a single record; a 1280x1024 RGB24 frame is ~4 MiB.
	maxPayload = 64 << 20
)

var (
	// ErrBadMagic is returned when a file does not start with the log magic.
	ErrBadMagic = errors.New("rawlog: bad magic")
	// ErrTruncatedRecord is returned when the log ends inside a record.
	ErrTruncatedRecord = errors.New("rawlog: truncated record")
	// ErrRecordTooLarge is returned for a record header claiming an implausible size.
	ErrRecordTooLarge = errors.New("rawlog: record too large")
	// ErrClosed is returned by Record after Close.
	ErrClosed = errors.New("rawlog: writer is closed")
)

type payload struct {
	Width     int    `cbor:"width"`
	Height    int    `cbor:"height"`
	Format    string `cbor:"format"`
	Timestamp int64  `cbor:"timestamp"`
	Data      []byte `cbor:"data"`
}

func marshalFrame(f *frame.RawFrame) ([]byte, error) {
	mode := f.Mode()
	return cbor.Marshal(payload{
		Width:     mode.Width,
		Height:    mode.Height,
		Format:    mode.Format.String(),
		Timestamp: f.Timestamp(),
		Data:      f.Data(),
	})
}

func unmarshalFrame(b []byte) (*frame.RawFrame, error) {
	var p payload
	if err := cbor.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	format, err := frame.ParsePixelFormat(p.Format)
	if err != nil {
		return nil, err
	}
	mode := frame.Mode{Width: p.Width, Height: p.Height, Format: format}
	return frame.New(mode, p.Data, p.Timestamp), nil
}
