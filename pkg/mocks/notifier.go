package mocks

import (
	"sync"

	"github.com/user/kinectlapse/pkg/ports"
)

// Notifier is a mock implementation of ports.Notifier that records messages.
type Notifier struct {
	mu sync.Mutex

	ReadyCalled    bool
	StoppingCalled bool
	Statuses       []string
}

func (m *Notifier) Ready() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadyCalled = true
	return nil
}

func (m *Notifier) Status(msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Statuses = append(m.Statuses, msg)
	return nil
}

func (m *Notifier) Stopping() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoppingCalled = true
	return nil
}

var _ ports.Notifier = (*Notifier)(nil)
