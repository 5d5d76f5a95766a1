package alert

import "errors"

var (
	// ErrInvalidButtonIndex indicates a button index outside the dialog's button set.
	ErrInvalidButtonIndex = errors.New("invalid button index")
	// ErrInvalidTimeout indicates a timeout that is not a positive number of seconds.
	ErrInvalidTimeout = errors.New("timeout must be greater than zero seconds")
	// ErrMalformedFormat indicates a countdown template without exactly one integer placeholder.
	ErrMalformedFormat = errors.New("countdown format must contain exactly one integer placeholder")
	// ErrAlreadyPresented indicates Show was called on a session that is already presented.
	ErrAlreadyPresented = errors.New("alert already presented")
	// ErrTimeoutActive indicates a timeout was already started for the session.
	ErrTimeoutActive = errors.New("alert timeout already started")
	// ErrSessionClosed indicates the session has already been resolved or torn down.
	ErrSessionClosed = errors.New("alert session closed")
	// ErrNoButtons indicates an alert was requested without any button.
	ErrNoButtons = errors.New("alert requires at least one button")
)
