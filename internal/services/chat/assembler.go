// File: internal/services/chat/assembler.go
package chat

import (
	"context"
	"strings"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/repository/conversation"
)

// ContextAssembler composes the message lists sent to the completion gateway. The gateway keeps
// no memory, so message order here is the conversation the model sees.
type ContextAssembler struct {
	config *Config
	store  conversation.ConversationRepository
	logger Logger
}

func NewContextAssembler(config *Config, store conversation.ConversationRepository, logger Logger) (*ContextAssembler, error) {
	if err := config.Validate(); err != nil {
		return nil, &ChatError{Type: ErrTypeConfig, Operation: "new_assembler", Message: err.Error()}
	}
	return &ContextAssembler{config: config, store: store, logger: logger}, nil
}

// BuildContext records message as the user's newest turn and returns
// [system, last HistoryWindow prior turns oldest first, new user turn].
// The focus topic, when set, is folded into the system message.
func (a *ContextAssembler) BuildContext(ctx context.Context, userID, message string) ([]domain.ChatMessage, domain.Turn, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.Turn{}, NewValidationError("build_context", "message cannot be empty")
	}

	turn, prior, err := a.store.AppendUserTurnWithContext(ctx, userID, message, a.config.HistoryWindow)
	if err != nil {
		return nil, domain.Turn{}, NewStoreError("build_context", userID, err)
	}

	system := CoachingPrompt
	if prior.Topic != nil && !prior.Topic.IsZero() {
		system += focusClause(*prior.Topic)
	}

	messages := make([]domain.ChatMessage, 0, len(prior.Turns)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: system})
	for _, t := range prior.Turns {
		messages = append(messages, t.AsMessage())
	}
	messages = append(messages, turn.AsMessage())

	a.logger.Debug("context assembled",
		"user_id", userID,
		"history_turns", len(prior.Turns),
		"has_topic", prior.Topic != nil)

	return messages, turn, nil
}

// BuildQuestion composes a stateless Q&A exchange. user may be nil for anonymous callers.
func (a *ContextAssembler) BuildQuestion(question, requestType string, user *domain.User) ([]domain.ChatMessage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, NewValidationError("build_question", "question cannot be empty")
	}

	system := QAPrompt
	if requestType == RequestTypeAlternative {
		system += alternativeClause
	}
	if user != nil {
		system += personalizationClause(user.Name)
	}

	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: system},
		{Role: domain.RoleUser, Content: question},
	}, nil
}

// BuildConversation validates a caller-supplied message list and prepends the default
// system message when the list has none. The input slice is not modified.
func (a *ContextAssembler) BuildConversation(messages []domain.ChatMessage) ([]domain.ChatMessage, error) {
	if len(messages) == 0 {
		return nil, NewValidationError("build_conversation", "messages cannot be empty")
	}

	hasSystem := false
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			hasSystem = true
		case domain.RoleUser, domain.RoleAssistant:
		default:
			return nil, NewValidationError("build_conversation", "unknown role: "+string(m.Role))
		}
	}

	out := make([]domain.ChatMessage, 0, len(messages)+1)
	if !hasSystem {
		out = append(out, domain.ChatMessage{Role: domain.RoleSystem, Content: DefaultSystemPrompt})
	}
	return append(out, messages...), nil
}
