// Package systemclock provides the wall-clock implementation of ports.Clock.
package systemclock

import (
	"time"

	"github.com/user/kinectlapse/pkg/ports"
)

// Clock reads the system clock.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current local time.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// After waits for d on a runtime timer.
func (c *Clock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

var _ ports.Clock = (*Clock)(nil)
