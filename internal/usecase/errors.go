package usecase

import "fmt"

type ErrorCode string

const (
	ErrorValidation    ErrorCode = "VALIDATION_ERROR"
	ErrorUpstream      ErrorCode = "UPSTREAM_ERROR"
	ErrorResponseParse ErrorCode = "RESPONSE_PARSE_ERROR"
	ErrorContentShape  ErrorCode = "CONTENT_SHAPE_ERROR"
	ErrorNetwork       ErrorCode = "NETWORK_ERROR"
	ErrorUnknown       ErrorCode = "UNKNOWN_ERROR"
)

// Error is the only error type Send returns. Status is set for
// ErrorUpstream and carries the upstream HTTP status; Detail carries the
// upstream response body for the same code.
type Error struct {
	Code   ErrorCode
	Reason string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
