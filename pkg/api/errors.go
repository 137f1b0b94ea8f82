package api

import (
	"errors"
	"fmt"
)

// Error is an application-level failure reported by the config server,
// either through an "error" field in the response body or through a
// non-success HTTP status.
type Error struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// TransportError means the request never produced a usable response:
// the connection failed, or the body could not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err carries a server-reported error.
func IsAPIError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// IsTransportError reports whether err is a connectivity or decoding failure.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
