// Package sdnotify reports capture progress to systemd through the
// sd_notify protocol. Outside a Type=notify unit every call is a no-op.
package sdnotify

import (
	"fmt"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/user/kinectlapse/pkg/ports"
)

// Notifier implements ports.Notifier with daemon.SdNotify.
type Notifier struct {
	// unsetEnv clears NOTIFY_SOCKET after Stopping so child processes do
	// not inherit it.
	unsetEnv bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{unsetEnv: true}
}

// Ready sends READY=1.
func (n *Notifier) Ready() error {
	return n.send(daemon.SdNotifyReady, false)
}

// Status sends a STATUS= line shown by systemctl status.
func (n *Notifier) Status(msg string) error {
	return n.send("STATUS="+msg, false)
}

// Stopping sends STOPPING=1.
func (n *Notifier) Stopping() error {
	return n.send(daemon.SdNotifyStopping, n.unsetEnv)
}

func (n *Notifier) send(state string, unsetEnv bool) error {
	// sent == false with a nil error means no supervisor is listening.
	if _, err := daemon.SdNotify(unsetEnv, state); err != nil {
		return fmt.Errorf("sd_notify %q: %w", state, err)
	}
	return nil
}

// Ensure Notifier implements ports.Notifier
var _ ports.Notifier = (*Notifier)(nil)
