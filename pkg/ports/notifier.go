package ports

// Notifier reports service state to a supervisor such as systemd.
type Notifier interface {
	// Ready signals that start-up has finished.
	Ready() error

	// Status publishes a free-form status line.
	Status(msg string) error

	// Stopping signals that shutdown has begun.
	Stopping() error
}
