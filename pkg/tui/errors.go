package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrSubmissionIncomplete is returned when the submit handler never
	// signalled completion before the session gave up.
	ErrSubmissionIncomplete = errors.New("tui: submission did not complete")
)
