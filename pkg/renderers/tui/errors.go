package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoFields is returned when asked to fill a form without input fields.
	ErrNoFields = errors.New("tui: form has no input fields")
)
