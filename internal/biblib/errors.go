package biblib

import (
	"errors"
	"fmt"
)

// Common errors returned by the library client.
var (
	// ErrNotFound indicates no library with the given name exists.
	ErrNotFound = errors.New("library not found")

	// ErrDuplicateName indicates the remote reported two libraries with
	// the same name. Names are the local lookup key, so this is surfaced
	// rather than silently picking one.
	ErrDuplicateName = errors.New("duplicate library name")

	// ErrRemote indicates the API accepted the request but its body
	// signals failure; the remote message is passed through verbatim.
	ErrRemote = errors.New("library API error")

	// ErrAuth indicates an authentication error.
	ErrAuth = errors.New("library API authentication error")

	// ErrNetwork indicates a transport-level failure.
	ErrNetwork = errors.New("network error communicating with library API")
)

// APIError represents an HTTP-level error from the biblib API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("library API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("library API error (status %d)", e.StatusCode)
}

// IsNotFound returns true if the error indicates a missing library.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
