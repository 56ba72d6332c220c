package restclient

import (
	"errors"
	"fmt"
)

// Kind classifies request failures.
type Kind int

const (
	// KindTransport indicates a connection-level failure (refused, DNS, TLS).
	KindTransport Kind = iota
	// KindTimeout indicates the request deadline elapsed before completion.
	KindTimeout
	// KindBadResponse indicates the response could not be read as an HTTP response.
	KindBadResponse
	// KindUnexpectedStatus indicates the status code did not match the expectation.
	KindUnexpectedStatus
	// KindMalformed indicates the body could not be deserialized into the requested type.
	KindMalformed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindBadResponse:
		return "bad_response"
	case KindUnexpectedStatus:
		return "unexpected_status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is a structured request error with classification. Status-level
// and decode-level failures carry the response metadata and raw body so
// callers can inspect a structured error payload from the server.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// StatusCode is the HTTP status code (0 when no response was received).
	StatusCode int
	// Headers are the response headers (nil when no response was received).
	Headers map[string]string
	// Message describes the error.
	Message string
	// Body is the raw response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("restclient: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("restclient: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError creates a transport-level error.
func NewTransportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: err.Error(),
		Err:     err,
	}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: err.Error(),
		Err:     err,
	}
}

// NewBadResponseError creates a bad-response error carrying whatever
// response metadata and bytes were received before the failure.
func NewBadResponseError(statusCode int, headers map[string]string, body []byte, err error) *Error {
	return &Error{
		Kind:       KindBadResponse,
		StatusCode: statusCode,
		Headers:    headers,
		Message:    err.Error(),
		Body:       body,
		Err:        err,
	}
}

// NewUnexpectedStatusError creates an unexpected-status error carrying
// the actual code, response headers, and raw body.
func NewUnexpectedStatusError(statusCode int, headers map[string]string, body []byte) *Error {
	return &Error{
		Kind:       KindUnexpectedStatus,
		StatusCode: statusCode,
		Headers:    headers,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
}

// NewMalformedError creates a malformed-response error wrapping the
// decode failure, with the raw bytes attached for diagnostics.
func NewMalformedError(statusCode int, headers map[string]string, body []byte, err error) *Error {
	return &Error{
		Kind:       KindMalformed,
		StatusCode: statusCode,
		Headers:    headers,
		Message:    err.Error(),
		Body:       body,
		Err:        err,
	}
}

// IsTransport checks if an error is a transport-level error.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTimeout
}

// IsBadResponse checks if an error is a bad-response error.
func IsBadResponse(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindBadResponse
}

// IsUnexpectedStatus checks if an error is an unexpected-status error.
func IsUnexpectedStatus(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnexpectedStatus
}

// IsMalformed checks if an error is a malformed-response error.
func IsMalformed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindMalformed
}

// StatusCode extracts the HTTP status code from a classified error.
// Returns 0 if the error carries no response.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
