// File: internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindDuplicateEmail     ErrorKind = "DUPLICATE_EMAIL"
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindInvalidToken       ErrorKind = "INVALID_TOKEN"
	KindGatewayTimeout     ErrorKind = "GATEWAY_TIMEOUT"
	KindGatewayError       ErrorKind = "GATEWAY_ERROR"
	KindMalformedResponse  ErrorKind = "MALFORMED_RESPONSE"
	KindValidation         ErrorKind = "VALIDATION"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindInternal           ErrorKind = "INTERNAL"
)

// Error is the failure type surfaced to callers of the core operations.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// ErrorKind lets Error satisfy Kinded.
func (e *Error) ErrorKind() ErrorKind { return e.Kind }

var (
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Message: "email is already registered"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken, Message: "invalid or expired token"}
	ErrGatewayTimeout     = &Error{Kind: KindGatewayTimeout, Message: "completion gateway timed out"}
	ErrGatewayError       = &Error{Kind: KindGatewayError, Message: "completion gateway failed"}
	ErrMalformedResponse  = &Error{Kind: KindMalformedResponse, Message: "completion gateway returned a malformed response"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "not found"}
)

// Kinded is implemented by errors that belong to the taxonomy.
type Kinded interface {
	error
	ErrorKind() ErrorKind
}

// KindOf classifies err. Unclassified errors are KindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var k Kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindInternal
}

// NewValidationError reports bad caller input.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Wrap attaches a cause to a kind while keeping errors.Is matching on the kind.
func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}
