package mocks

import (
	"sync"
	"time"

	"github.com/user/kinectlapse/pkg/ports"
)

// Clock is a mock implementation of ports.Clock.
// By default Now returns Start advanced by Step on every call and After
// fires immediately.
type Clock struct {
	mu sync.Mutex

	Start time.Time
	Step  time.Duration
	calls int

	NowFunc   func() time.Time
	AfterFunc func(d time.Duration) <-chan time.Time

	// Recorded After durations
	Waits []time.Duration
}

// NewClock creates a clock starting at start that advances by step on each Now call.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{Start: start, Step: step}
}

func (m *Clock) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.Start.Add(time.Duration(m.calls) * m.Step)
	m.calls++
	return t
}

func (m *Clock) After(d time.Duration) <-chan time.Time {
	m.mu.Lock()
	m.Waits = append(m.Waits, d)
	m.mu.Unlock()
	if m.AfterFunc != nil {
		return m.AfterFunc(d)
	}
	ch := make(chan time.Time, 1)
	ch <- m.Start
	return ch
}

var _ ports.Clock = (*Clock)(nil)
