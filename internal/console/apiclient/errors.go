package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired is returned on 401; the client has already dropped its token.
	ErrSessionExpired = errors.New("session expired")
	// ErrTimeout is returned when a call exceeds its deadline.
	ErrTimeout = errors.New("request timed out")
)

// ValidationError is a client-side precondition failure. No request was sent.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapValidation reports a domain rule violation on field, keeping err matchable with errors.Is.
func WrapValidation(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: err.Error(), Err: err}
}

// ServerRejectionError is a non-2xx answer. Detail is meant to be shown to the user verbatim.
type ServerRejectionError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *ServerRejectionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// IsRejection reports whether err is a server rejection with the given status.
func IsRejection(err error, status int) bool {
	var rej *ServerRejectionError
	return errors.As(err, &rej) && rej.StatusCode == status
}
