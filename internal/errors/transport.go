package errors

import (
	stdErrors "errors"
	"fmt"
)

// TransportError covers network failures and non-2xx responses from an upstream source.
type TransportError struct {
	Source     string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a transport failure for source.
func NewTransportError(source string, statusCode int, err error) *TransportError {
	return &TransportError{Source: source, StatusCode: statusCode, Err: err}
}

// IsTransportError reports whether err is a TransportError (even when wrapped).
func IsTransportError(err error) bool {
	var tErr *TransportError
	return stdErrors.As(err, &tErr)
}

// MalformedResponseError means the upstream answered 2xx but the body did not
// have the expected shape.
type MalformedResponseError struct {
	Source string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Source, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// NewMalformedResponseError wraps a decoding failure for source.
func NewMalformedResponseError(source string, err error) *MalformedResponseError {
	return &MalformedResponseError{Source: source, Err: err}
}

// IsMalformedResponseError reports whether err is a MalformedResponseError (even when wrapped).
func IsMalformedResponseError(err error) bool {
	var mErr *MalformedResponseError
	return stdErrors.As(err, &mErr)
}
