package ai

import (
	"errors"
	"fmt"
)

// TransportError indicates the request never produced a usable HTTP response
// (connection refused, DNS failure, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError indicates the provider rejected the request with a non-success
// status. Message carries the remote error payload when the provider supplied
// one, otherwise a plain status-code description.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion api error (status %d): %s", e.StatusCode, e.Message)
}

// InvalidResponseError indicates a success payload that does not match the
// expected shape, including a score response with the wrong component count.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid completion response: %s", e.Reason)
}

// IsInvalidResponse reports whether err is (or wraps) an InvalidResponseError.
func IsInvalidResponse(err error) bool {
	var target *InvalidResponseError
	return errors.As(err, &target)
}
