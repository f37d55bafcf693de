package frame

import "errors"

var (
	// ErrTruncatedFrame is returned when a frame holds fewer bytes than its
	// mode requires.
	ErrTruncatedFrame = errors.New("frame: truncated frame")

	// ErrInvalidMode is returned when a frame's dimensions are not positive.
	ErrInvalidMode = errors.New("frame: invalid frame mode")
)
