// File: internal/services/chat_service.go
package services

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/repository/conversation"
	chatservice "github.com/iyunix/go-habitcoach/internal/services/chat"
	"github.com/iyunix/go-habitcoach/internal/services/gateway"
)

const (
	chatActivityCategory = "chat"
	chatActivityHabit    = "habit_coaching"
)

type SendResult struct {
	Reply   string
	History []domain.Turn
	Usage   openai.Usage
}

type HistoryResult struct {
	Turns []domain.Turn
	Topic *domain.FocusTopic
}

type Question struct {
	Question    string
	Category    string
	HabitType   string
	RequestType string
}

type Answer struct {
	Answer        string
	Usage         openai.Usage
	Authenticated bool
}

type ChatService struct {
	config     *chatservice.Config
	store      conversation.ConversationRepository
	assembler  *chatservice.ContextAssembler
	gateway    gateway.Client
	activities *ActivityService
	logger     Logger
}

func NewChatService(
	config *chatservice.Config,
	store conversation.ConversationRepository,
	gw gateway.Client,
	activities *ActivityService,
	logger Logger,
) (*ChatService, error) {
	if store == nil {
		return nil, chatservice.NewValidationError("constructor", "conversation store is required")
	}
	if gw == nil {
		return nil, chatservice.NewValidationError("constructor", "gateway client is required")
	}
	if activities == nil {
		return nil, chatservice.NewValidationError("constructor", "activity service is required")
	}
	if config == nil {
		config = chatservice.DefaultConfig()
	}

	assembler, err := chatservice.NewContextAssembler(config, store, logger)
	if err != nil {
		return nil, err
	}

	return &ChatService{
		config:     config,
		store:      store,
		assembler:  assembler,
		gateway:    gw,
		activities: activities,
		logger:     logger,
	}, nil
}

// SendMessage runs one coaching exchange. A non-empty topic replaces the stored focus topic
// first. The user turn is stored before the gateway call and stays stored if the call fails.
func (s *ChatService) SendMessage(ctx context.Context, userID, message string, topic *domain.FocusTopic) (*SendResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, chatservice.NewValidationError("send_message", "message cannot be empty")
	}
	if topic != nil && !topic.IsZero() {
		if err := s.store.SetFocusTopic(ctx, userID, *topic); err != nil {
			return nil, chatservice.NewStoreError("send_message", userID, err)
		}
	}

	messages, _, err := s.assembler.BuildContext(ctx, userID, message)
	if err != nil {
		return nil, err
	}

	completion, err := s.complete(ctx, messages)
	if err != nil {
		s.logger.Error("coaching reply failed",
			"user_id", userID,
			"kind", domain.KindOf(err),
			"error", err)
		return nil, err
	}

	if _, err := s.store.AppendAssistantTurn(ctx, userID, completion.Reply); err != nil {
		return nil, chatservice.NewStoreError("send_message", userID, err)
	}

	s.activities.Record(ctx, userID, domain.ActivityChatConversation, chatActivityCategory, chatActivityHabit, message)

	history, err := s.store.History(ctx, userID)
	if err != nil {
		return nil, chatservice.NewStoreError("send_message", userID, err)
	}

	s.logger.Info("coaching reply delivered",
		"user_id", userID,
		"history_len", len(history),
		"total_tokens", completion.Usage.TotalTokens)

	return &SendResult{Reply: completion.Reply, History: history, Usage: completion.Usage}, nil
}

// History returns all turns and the focus topic as one consistent view.
func (s *ChatService) History(ctx context.Context, userID string) (*HistoryResult, error) {
	snap, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return nil, chatservice.NewStoreError("history", userID, err)
	}
	if snap.Turns == nil {
		snap.Turns = []domain.Turn{}
	}
	if snap.Topic != nil && snap.Topic.IsZero() {
		snap.Topic = nil
	}
	return &HistoryResult{Turns: snap.Turns, Topic: snap.Topic}, nil
}

func (s *ChatService) Clear(ctx context.Context, userID string) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return chatservice.NewStoreError("clear", userID, err)
	}
	s.logger.Info("conversation cleared", "user_id", userID)
	return nil
}

// SelectFocusTopic replaces the stored focus topic. A topic with no fields set is rejected.
func (s *ChatService) SelectFocusTopic(ctx context.Context, userID string, topic domain.FocusTopic) error {
	if topic.IsZero() {
		return chatservice.NewValidationError("select_focus_topic", "habit title, description or category is required")
	}
	if err := s.store.SetFocusTopic(ctx, userID, topic); err != nil {
		return chatservice.NewStoreError("select_focus_topic", userID, err)
	}
	s.activities.Record(ctx, userID, domain.ActivityHabitSelected, topic.Category, topic.Title, "")
	s.logger.Info("focus topic selected", "user_id", userID, "title", topic.Title)
	return nil
}

// AskQuestion answers a one-off habit question. user is nil for anonymous callers; only
// authenticated questions are recorded as activity.
func (s *ChatService) AskQuestion(ctx context.Context, q Question, user *domain.User) (*Answer, error) {
	messages, err := s.assembler.BuildQuestion(q.Question, q.RequestType, user)
	if err != nil {
		return nil, err
	}

	completion, err := s.complete(ctx, messages)
	if err != nil {
		s.logger.Error("habit answer failed",
			"authenticated", user != nil,
			"kind", domain.KindOf(err),
			"error", err)
		return nil, err
	}

	if user != nil {
		s.activities.Record(ctx, user.ID, domain.ActivityHabitQARequest, q.Category, q.HabitType, q.Question)
	}

	return &Answer{Answer: completion.Reply, Usage: completion.Usage, Authenticated: user != nil}, nil
}

// Converse relays a caller-owned message list. Nothing is stored.
func (s *ChatService) Converse(ctx context.Context, messages []domain.ChatMessage) (*gateway.Completion, error) {
	prepared, err := s.assembler.BuildConversation(messages)
	if err != nil {
		return nil, err
	}
	return s.complete(ctx, prepared)
}

// complete detaches the call from request cancellation; the gateway timeout still bounds it.
func (s *ChatService) complete(ctx context.Context, messages []domain.ChatMessage) (*gateway.Completion, error) {
	return s.gateway.Complete(context.WithoutCancel(ctx), messages)
}
