// File: internal/handlers/status_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/iyunix/go-habitcoach/internal/dtos"
	"github.com/iyunix/go-habitcoach/internal/services"
)

type StatusHandler struct {
	Status *services.StatusService
	logger Logger
}

func NewStatusHandler(status *services.StatusService, logger Logger) *StatusHandler {
	return &StatusHandler{Status: status, logger: logger}
}

func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	s, err := h.Status.Status(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.StatusResponseDTO{
		Status:          s.Status,
		Timestamp:       s.Timestamp.Format(time.RFC3339Nano),
		UsersCount:      s.UsersCount,
		ActiveSessions:  s.ActiveSessions,
		TotalActivities: s.TotalActivities,
	})
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
