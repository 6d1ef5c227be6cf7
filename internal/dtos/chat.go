// File: internal/dtos/chat.go
package dtos

import (
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

type FocusTopicDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type TurnDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type SendMessageRequestDTO struct {
	Message       string         `json:"message"`
	SelectedHabit *FocusTopicDTO `json:"selected_habit,omitempty"`
}

type SendMessageResponseDTO struct {
	Success     bool         `json:"success"`
	Response    string       `json:"response"`
	ChatHistory []TurnDTO    `json:"chat_history"`
	Usage       openai.Usage `json:"usage"`
}

type HistoryResponseDTO struct {
	Success       bool           `json:"success"`
	ChatHistory   []TurnDTO      `json:"chat_history"`
	SelectedHabit *FocusTopicDTO `json:"selected_habit"`
	TotalMessages int            `json:"total_messages"`
}

type SelectHabitResponseDTO struct {
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	SelectedHabit FocusTopicDTO `json:"selected_habit"`
}

type QARequestDTO struct {
	Question    string `json:"question"`
	Category    string `json:"category,omitempty"`
	HabitType   string `json:"habitType,omitempty"`
	RequestType string `json:"requestType,omitempty"`
}

type QAResponseDTO struct {
	Success           bool         `json:"success"`
	Question          string       `json:"question"`
	Answer            string       `json:"answer"`
	Usage             openai.Usage `json:"usage"`
	UserAuthenticated bool         `json:"user_authenticated"`
}

type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ConversationRequestDTO struct {
	Messages []MessageDTO `json:"messages"`
}

type ConversationResponseDTO struct {
	Response string       `json:"response"`
	Usage    openai.Usage `json:"usage"`
}

type GoalDTO struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type GoalsResponseDTO struct {
	Goals []GoalDTO `json:"goals"`
}

func (dto FocusTopicDTO) ToDomain() domain.FocusTopic {
	return domain.FocusTopic{Title: dto.Title, Description: dto.Description, Category: dto.Category}
}

func FocusTopicFromDomain(topic *domain.FocusTopic) *FocusTopicDTO {
	if topic == nil {
		return nil
	}
	return &FocusTopicDTO{Title: topic.Title, Description: topic.Description, Category: topic.Category}
}

func TurnsFromDomain(turns []domain.Turn) []TurnDTO {
	out := make([]TurnDTO, len(turns))
	for i, t := range turns {
		out[i] = TurnDTO{
			Role:      string(t.Role),
			Content:   t.Content,
			Timestamp: t.Timestamp.Format(time.RFC3339Nano),
		}
	}
	return out
}

func (dto ConversationRequestDTO) ToDomain() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(dto.Messages))
	for i, m := range dto.Messages {
		out[i] = domain.ChatMessage{Role: domain.Role(m.Role), Content: m.Content}
	}
	return out
}
