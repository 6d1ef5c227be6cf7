// File: internal/handlers/chat_handler.go
package handlers

import (
	"net/http"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/dtos"
	"github.com/iyunix/go-habitcoach/internal/middleware"
	"github.com/iyunix/go-habitcoach/internal/services"
)

type ChatHandler struct {
	ChatService *services.ChatService
	logger      Logger
}

func NewChatHandler(cs *services.ChatService, logger Logger) *ChatHandler {
	return &ChatHandler{ChatService: cs, logger: logger}
}

// currentUser is only called behind RequireAuth.
func currentUser(r *http.Request) *domain.User {
	u, _ := middleware.UserFromContext(r.Context())
	return u
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dtos.SendMessageRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var topic *domain.FocusTopic
	if req.SelectedHabit != nil {
		t := req.SelectedHabit.ToDomain()
		topic = &t
	}

	res, err := h.ChatService.SendMessage(r.Context(), currentUser(r).ID, req.Message, topic)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.SendMessageResponseDTO{
		Success:     true,
		Response:    res.Reply,
		ChatHistory: dtos.TurnsFromDomain(res.History),
		Usage:       res.Usage,
	})
}

func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	res, err := h.ChatService.History(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.HistoryResponseDTO{
		Success:       true,
		ChatHistory:   dtos.TurnsFromDomain(res.Turns),
		SelectedHabit: dtos.FocusTopicFromDomain(res.Topic),
		TotalMessages: len(res.Turns),
	})
}

func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.ChatService.Clear(r.Context(), currentUser(r).ID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.Ack("채팅 내역이 초기화되었습니다"))
}

func (h *ChatHandler) SelectHabit(w http.ResponseWriter, r *http.Request) {
	var req dtos.FocusTopicDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.ChatService.SelectFocusTopic(r.Context(), currentUser(r).ID, req.ToDomain()); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.SelectHabitResponseDTO{
		Success:       true,
		Message:       "습관이 선택되었습니다",
		SelectedHabit: req,
	})
}

// AskQuestion is reachable with or without a token.
func (h *ChatHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req dtos.QARequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, _ := middleware.UserFromContext(r.Context())
	ans, err := h.ChatService.AskQuestion(r.Context(), services.Question{
		Question:    req.Question,
		Category:    req.Category,
		HabitType:   req.HabitType,
		RequestType: req.RequestType,
	}, user)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.QAResponseDTO{
		Success:           true,
		Question:          req.Question,
		Answer:            ans.Answer,
		Usage:             ans.Usage,
		UserAuthenticated: ans.Authenticated,
	})
}

func (h *ChatHandler) Converse(w http.ResponseWriter, r *http.Request) {
	var req dtos.ConversationRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	out, err := h.ChatService.Converse(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ConversationResponseDTO{Response: out.Reply, Usage: out.Usage})
}

var habitGoals = []dtos.GoalDTO{
	{ID: "health", Label: "건강 관리", Description: "운동, 식단, 수면 관련 습관"},
	{ID: "productivity", Label: "생산성 향상", Description: "업무 효율성과 시간 관리"},
	{ID: "stress", Label: "스트레스 관리", Description: "정신 건강과 감정 조절"},
	{ID: "energy", Label: "에너지 증진", Description: "활력과 컨디션 개선"},
}

func (h *ChatHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dtos.GoalsResponseDTO{Goals: habitGoals})
}
