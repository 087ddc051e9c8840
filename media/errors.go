package media

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no file in the library has a stem equal to the requested id.
	ErrNotFound = errors.New("media not found")

	// ErrRangeNotSatisfiable is returned when a Range header cannot be served against the resource size.
	ErrRangeNotSatisfiable = errors.New("range not satisfiable")
)

// StreamError reports a failure while copying bytes to the client after headers were committed.
// The response is aborted and the file handle released; the process carries on.
type StreamError struct {
	ID      string
	Written int64
	Err     error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %q aborted after %d bytes: %v", e.ID, e.Written, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// IsStreamError reports whether err carries a *StreamError.
func IsStreamError(err error) bool {
	var e *StreamError
	return errors.As(err, &e)
}
