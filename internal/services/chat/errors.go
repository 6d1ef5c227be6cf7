// File: internal/services/chat/errors.go
package chat

import (
	"fmt"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStore      ErrorType = "STORE"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	UserID    string
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func (e *ChatError) ErrorKind() domain.ErrorKind {
	if e.Type == ErrTypeValidation {
		return domain.KindValidation
	}
	return domain.KindInternal
}

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewStoreError(operation, userID string, cause error) *ChatError {
	return &ChatError{
		Type:      ErrTypeStore,
		Operation: operation,
		Message:   "conversation store failed",
		UserID:    userID,
		Cause:     cause,
	}
}
