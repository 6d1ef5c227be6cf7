// File: internal/handlers/response.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/dtos"
	chatservice "github.com/iyunix/go-habitcoach/internal/services/chat"
	"github.com/iyunix/go-habitcoach/internal/services/gateway"
)

const maxBodyBytes = 1 << 20

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps err onto a status code and the structured error body.
func writeError(w http.ResponseWriter, logger Logger, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	body := dtos.ErrorBody{Kind: kind, Message: publicMessage(kind, err)}
	var ge *gateway.GatewayError
	if errors.As(err, &ge) {
		body.Status = ge.Code
		body.Detail = ge.Detail
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "kind", kind, "status", status, "error", err)
	}
	writeJSON(w, status, dtos.ErrorResponse{Error: body})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindDuplicateEmail, domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindInvalidCredentials, domain.KindInvalidToken:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindGatewayTimeout:
		return http.StatusGatewayTimeout
	case domain.KindGatewayError, domain.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internals for unclassified failures.
func publicMessage(kind domain.ErrorKind, err error) string {
	if kind == domain.KindInternal {
		return "internal server error"
	}
	var (
		de *domain.Error
		ge *gateway.GatewayError
		ce *chatservice.ChatError
	)
	switch {
	case errors.As(err, &de):
		return de.Message
	case errors.As(err, &ge):
		return ge.Message
	case errors.As(err, &ce):
		return ce.Message
	default:
		return err.Error()
	}
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("request body is required")
		}
		return domain.NewValidationError("invalid JSON body")
	}
	return nil
}
