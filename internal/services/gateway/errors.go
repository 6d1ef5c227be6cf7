// File: internal/services/gateway/errors.go
package gateway

import (
	"errors"
	"fmt"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeTimeout   ErrorType = "TIMEOUT"
	ErrTypeNetwork   ErrorType = "NETWORK"
	ErrTypeUpstream  ErrorType = "UPSTREAM"
	ErrTypeMalformed ErrorType = "MALFORMED"
)

// GatewayError describes a failed completion call. Code and Detail carry the upstream
// status and body excerpt when the gateway answered with a non-2xx status.
type GatewayError struct {
	Type      ErrorType
	Code      int
	Detail    string
	Message   string
	Operation string
	Cause     error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("gateway %s error in %s: %s", e.Type, e.Operation, e.Message)
	if e.Code != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Code)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return msg
}

func (e *GatewayError) Unwrap() error { return e.Cause }

// ErrorKind maps the gateway failure onto the caller-facing taxonomy.
func (e *GatewayError) ErrorKind() domain.ErrorKind {
	switch e.Type {
	case ErrTypeTimeout:
		return domain.KindGatewayTimeout
	case ErrTypeMalformed:
		return domain.KindMalformedResponse
	case ErrTypeConfig:
		return domain.KindInternal
	default:
		return domain.KindGatewayError
	}
}

// Is lets callers test against domain sentinels, e.g. errors.Is(err, domain.ErrGatewayTimeout).
func (e *GatewayError) Is(target error) bool {
	var d *domain.Error
	if errors.As(target, &d) {
		return d.Kind == e.ErrorKind()
	}
	return false
}

func NewConfigError(msg string) *GatewayError {
	return &GatewayError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func newTimeoutError(operation string, cause error) *GatewayError {
	return &GatewayError{Type: ErrTypeTimeout, Operation: operation, Message: "request timed out", Cause: cause}
}

func newNetworkError(operation, msg string, cause error) *GatewayError {
	return &GatewayError{Type: ErrTypeNetwork, Operation: operation, Message: msg, Cause: cause}
}

func newUpstreamError(operation string, code int, detail string) *GatewayError {
	return &GatewayError{
		Type:      ErrTypeUpstream,
		Operation: operation,
		Code:      code,
		Detail:    detail,
		Message:   "upstream returned non-success status",
	}
}

func newMalformedError(operation, msg string, cause error) *GatewayError {
	return &GatewayError{Type: ErrTypeMalformed, Operation: operation, Message: msg, Cause: cause}
}
