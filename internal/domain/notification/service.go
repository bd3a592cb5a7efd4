package notification

// Notifier is how services surface one human-readable message per outcome.
type Notifier interface {
	Notify(level Level, message string)
}

// Feed is a session's list of active notifications.
type Feed interface {
	Notifier
	Active() []Notification
	Dismiss(id string) error
	Sweep() int
}
