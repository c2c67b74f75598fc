package ads

import (
	"errors"
	"fmt"
)

// Common errors returned by the ADS client.
var (
	// ErrNotFound indicates a lookup yielded zero records.
	ErrNotFound = errors.New("no matching records in ADS")

	// ErrAmbiguous indicates a should-be-unique lookup yielded more than
	// one record.
	ErrAmbiguous = errors.New("ambiguous result for unique ADS lookup")

	// ErrAuth indicates an authentication error (missing/invalid token).
	ErrAuth = errors.New("ADS authentication error")

	// ErrRateLimited indicates the daily rate limit has been exceeded.
	ErrRateLimited = errors.New("ADS rate limit exceeded")

	// ErrSearch indicates a malformed query or an unexpected response
	// shape (missing "response" envelope).
	ErrSearch = errors.New("unexpected ADS search response")

	// ErrRemote indicates the API accepted the request at the transport
	// level but reported a failure in the response body.
	ErrRemote = errors.New("ADS API error")

	// ErrNetwork indicates a transport-level failure (timeout, connection
	// error). Never retried; surfaced immediately.
	ErrNetwork = errors.New("network error communicating with ADS")
)

// APIError represents an HTTP-level error from the ADS API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ADS API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ADS API error (status %d)", e.StatusCode)
}

// IsNotFound returns true if the error indicates zero matching records.
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

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuth) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
