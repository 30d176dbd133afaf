package download

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks a failed fetch. Nothing is left at the target path and
	// the caller may retry.
	ErrNetwork = errors.New("network error")

	// ErrFileSystem marks a failure to create, write or rename a cache file.
	ErrFileSystem = errors.New("file system error")

	// ErrMalformedArchive marks an archive that is unreadable or does not hold
	// exactly one file.
	ErrMalformedArchive = errors.New("malformed archive")
)

// HTTPError is a non-2xx response. It matches ErrNetwork with errors.Is.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Is reports ErrNetwork as a match.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNetwork
}

// IsRetryable returns true for server errors and rate limiting.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
