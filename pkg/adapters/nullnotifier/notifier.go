// Package nullnotifier provides a notifier for runs without a supervisor.
package nullnotifier

import "github.com/user/kinectlapse/pkg/ports"

// Notifier discards all notifications.
type Notifier struct{}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Ready() error        { return nil }
func (n *Notifier) Status(string) error { return nil }
func (n *Notifier) Stopping() error     { return nil }

var _ ports.Notifier = (*Notifier)(nil)
