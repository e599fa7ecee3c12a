package http

import "fmt"

// NetworkError describes a failed license or download request: either a
// connection-level failure or a non-success HTTP status. These are fatal
// for the run; re-running the tool is the retry path.
type NetworkError struct {
	// URL is the request URL.
	URL string

	// StatusCode is the HTTP status, 0 for connection failures.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
