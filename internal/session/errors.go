package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by operations that need a generated artifact.
	ErrNotReady = errors.New("no generated content yet")
	// ErrClosed is returned once a session has been closed.
	ErrClosed = errors.New("session closed")
)

// ValidationError reports input the session refused. State is unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

