package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the console. Every error returned by an operation
// that talks to the HRIS backend (the API client and the stores built on it)
// matches exactly one of these with errors.Is.
var (
	// ErrNetwork indicates that no response was received (timeout, connectivity).
	ErrNetwork = errors.New("network error")

	// ErrAuth indicates that the backend rejected the session (401/403).
	ErrAuth = errors.New("authentication error")

	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrConflict indicates that the resource already exists (e.g. a run for the same period).
	ErrConflict = errors.New("conflict")

	// ErrServer indicates a 5xx response or a payload that could not be understood.
	ErrServer = errors.New("server error")
)

// Error carries the kind, the HTTP status (0 when no response was received)
// and the human-readable message that should be shown to the user.
type Error struct {
	Kind    error
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// New builds an *Error of the given kind.
func New(kind error, status int, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Cause: cause}
}

// UserMessage returns the message a notification should display for err.
func UserMessage(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	if err != nil && fallback == "" {
		return err.Error()
	}
	return fallback
}

// KindOf reports which kind err belongs to, or nil when it is unclassified.
func KindOf(err error) error {
	for _, kind := range []error{ErrAuth, ErrNetwork, ErrConflict, ErrValidation, ErrServer} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
