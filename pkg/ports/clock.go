package ports

import "time"

// Clock abstracts wall-clock time and timers so capture timing can be
// driven deterministically in tests.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time

	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time
}
