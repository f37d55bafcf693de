package capture

import "time"

// State is the controller's position in a run.
type State int

const (
	Idle State = iota
	Validating
	Capturing
	// Done means the picture count was reached or the source ran out.
	Done
	// Aborted means validation or the frame source failed.
	Aborted
	// Cancelled means the context was cancelled.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Capturing:
		return "capturing"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result describes a finished run.
type Result struct {
	State State

	Attempts int // TakeSnapshot calls
	Saved    int
	Dropped  int // undecodable frames
	Failed   int // sink errors

	Files []string // saved paths, in order

	Started  time.Time
	Finished time.Time
}

// Duration returns the wall-clock length of the run.
func (r Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
