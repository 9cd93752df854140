package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrLastNotebook     = errors.New("cannot delete the last remaining collection")
	ErrInvalidFormat    = errors.New("invalid file format")
	ErrNotImage         = errors.New("not an image")
	ErrRemoteRejected   = errors.New("remote store rejected the request")
	ErrNotAuthenticated = errors.New("not logged in")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteError carries the message a remote store returned with a failure
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Op, ErrRemoteRejected)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRejected
}
