// File: internal/handlers/auth_handlers.go
package handlers

import (
	"net/http"

	"github.com/iyunix/go-habitcoach/internal/dtos"
	"github.com/iyunix/go-habitcoach/internal/middleware"
	"github.com/iyunix/go-habitcoach/internal/services/user_services"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	Auth   *user_services.AuthService
	logger Logger
}

func NewAuthHandler(auth *user_services.AuthService, logger Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, token, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.AuthResponseDTO{
		Success: true,
		Message: "회원가입이 완료되었습니다",
		Token:   token,
		User:    dtos.FromDomain(*user),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.AuthResponseDTO{
		Success: true,
		Message: "로그인이 완료되었습니다",
		Token:   token,
		User:    dtos.FromDomain(*user),
	})
}

// Logout revokes the presenting token only; other sessions of the user survive.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(r.Context(), middleware.TokenFromContext(r.Context()))
	writeJSON(w, http.StatusOK, dtos.Ack("로그아웃이 완료되었습니다"))
}
