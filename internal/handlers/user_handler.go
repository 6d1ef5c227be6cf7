// File: internal/handlers/user_handler.go
package handlers

import (
	"net/http"

	"github.com/iyunix/go-habitcoach/internal/dtos"
	"github.com/iyunix/go-habitcoach/internal/services"
	"github.com/iyunix/go-habitcoach/internal/services/user_services"
)

type UserHandler struct {
	Users      *user_services.UserService
	Activities *services.ActivityService
	logger     Logger
}

func NewUserHandler(users *user_services.UserService, activities *services.ActivityService, logger Logger) *UserHandler {
	return &UserHandler{Users: users, Activities: activities, logger: logger}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dtos.ProfileResponseDTO{
		Success: true,
		User:    dtos.FromDomain(*currentUser(r)),
	})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dtos.ProfileUpdateRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), currentUser(r).ID, req.ToDomain())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.ProfileResponseDTO{
		Success: true,
		Message: "프로필이 업데이트되었습니다",
		User:    dtos.FromDomain(*user),
	})
}

func (h *UserHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	var req dtos.ActivityLogRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	record, err := h.Activities.Log(r.Context(), currentUser(r).ID, services.ActivityEntry{
		Activity:  req.Activity,
		Timestamp: req.Timestamp,
		Category:  req.Category,
		Habit:     req.Habit,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.ActivityLogResponseDTO{
		Success:  true,
		Message:  "활동이 기록되었습니다",
		Activity: dtos.ActivityFromDomain(*record),
	})
}

func (h *UserHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	records, err := h.Activities.List(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ActivitiesResponseDTO{
		Success:    true,
		Activities: dtos.ActivitiesFromDomain(records),
		Total:      len(records),
	})
}
