package gist

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is returned when a save is attempted before any file
	// contents were produced. Hitting it indicates a caller bug, not a
	// user-recoverable condition.
	ErrNoContent = errors.New("no file contents to upload")

	// ErrNoToken is returned when a save is attempted without an access
	// token. The user must sign in before saving.
	ErrNoToken = errors.New("no access token")

	// ErrTruncated is returned when the remote marks the requested file as
	// truncated. Truncated content is incomplete and is never applied.
	ErrTruncated = errors.New("gist file is truncated")
)

// NotFoundError reports that the remote store has no gist with the given id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gist %q not found", e.ID)
}

// StatusError wraps a non-2xx response that is not covered by a more
// specific error.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gist api returned status %d: %s", e.Code, e.Body)
}
