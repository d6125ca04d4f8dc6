package stackex

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches zero users.
// The message is user-facing and rendered verbatim in error state.
var ErrNotFound = errors.New("User not found")

// UpstreamError is a non-2xx response from the platform API. Message is
// the platform's own error_message field when it sent one.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API Error: %s", e.Message)
	}
	return fmt.Sprintf("API Error: HTTP error! status: %d", e.StatusCode)
}

// TransportError wraps a network-level or decode failure: the request
// never produced a usable platform response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
