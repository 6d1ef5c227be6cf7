// File: internal/dtos/response.go
package dtos

import "github.com/iyunix/go-habitcoach/internal/domain"

// MessageResponse is the plain acknowledgement body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorBody struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
	// Upstream status and body excerpt, set for gateway failures only.
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func NewErrorResponse(kind domain.ErrorKind, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Kind: kind, Message: message}}
}

func Ack(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}
