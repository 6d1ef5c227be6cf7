package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/repository/conversation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func newAssembler(t *testing.T) (*ContextAssembler, conversation.ConversationRepository) {
	t.Helper()
	store := conversation.NewMemoryConversationRepository()
	a, err := NewContextAssembler(DefaultConfig(), store, nopLogger{})
	require.NoError(t, err)
	return a, store
}

func roles(msgs []domain.ChatMessage) []domain.Role {
	out := make([]domain.Role, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}

func TestBuildContextFirstMessage(t *testing.T) {
	ctx := context.Background()
	a, store := newAssembler(t)

	msgs, turn, err := a.BuildContext(ctx, "u1", "I want to read more")
	require.NoError(t, err)

	require.Equal(t, []domain.Role{domain.RoleSystem, domain.RoleUser}, roles(msgs))
	require.Equal(t, CoachingPrompt, msgs[0].Content)
	require.Equal(t, "I want to read more", msgs[1].Content)
	require.Equal(t, domain.RoleUser, turn.Role)

	history, err := store.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "I want to read more", history[0].Content)
}

func TestBuildContextScenarioWithFocusTopic(t *testing.T) {
	ctx := context.Background()
	a, store := newAssembler(t)

	_, _, err := a.BuildContext(ctx, "a", "I want to read more")
	require.NoError(t, err)
	_, err = store.AppendAssistantTurn(ctx, "a", "Try reading 1 page after brushing your teeth.")
	require.NoError(t, err)

	require.NoError(t, store.SetFocusTopic(ctx, "a", domain.FocusTopic{Title: "Read Daily"}))

	msgs, _, err := a.BuildContext(ctx, "a", "What if I skip a day?")
	require.NoError(t, err)

	require.Equal(t, []domain.Role{domain.RoleSystem, domain.RoleUser, domain.RoleAssistant, domain.RoleUser}, roles(msgs))
	require.Contains(t, msgs[0].Content, "Read Daily")
	require.True(t, strings.HasPrefix(msgs[0].Content, CoachingPrompt))
	require.Equal(t, CoachingPrompt+"\n\n현재 사용자가 관심 있는 습관: Read Daily - ", msgs[0].Content)
	require.Equal(t, "I want to read more", msgs[1].Content)
	require.Equal(t, "Try reading 1 page after brushing your teeth.", msgs[2].Content)
	require.Equal(t, "What if I skip a day?", msgs[3].Content)
}

func TestBuildContextWindow(t *testing.T) {
	ctx := context.Background()
	a, store := newAssembler(t)

	for i := 0; i < 30; i++ {
		_, err := store.AppendUserTurn(ctx, "u", fmt.Sprintf("turn-%d", i))
		require.NoError(t, err)
	}

	msgs, _, err := a.BuildContext(ctx, "u", "newest")
	require.NoError(t, err)

	// system + 20 prior turns + new turn
	require.Len(t, msgs, 22)
	require.Equal(t, domain.RoleSystem, msgs[0].Role)
	require.Equal(t, "turn-10", msgs[1].Content)
	require.Equal(t, "turn-29", msgs[20].Content)
	require.Equal(t, "newest", msgs[21].Content)

	for _, m := range msgs[1:] {
		require.NotEqual(t, domain.RoleSystem, m.Role)
	}

	history, err := store.History(ctx, "u")
	require.NoError(t, err)
	require.Len(t, history, 31)
}

func TestBuildContextIgnoresEmptyTopic(t *testing.T) {
	ctx := context.Background()
	a, store := newAssembler(t)
	require.NoError(t, store.SetFocusTopic(ctx, "u", domain.FocusTopic{}))

	msgs, _, err := a.BuildContext(ctx, "u", "hello")
	require.NoError(t, err)
	require.Equal(t, CoachingPrompt, msgs[0].Content)
}

func TestBuildContextRejectsBlankMessage(t *testing.T) {
	ctx := context.Background()
	a, store := newAssembler(t)

	_, _, err := a.BuildContext(ctx, "u", "   ")
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	history, err := store.History(ctx, "u")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestBuildQuestion(t *testing.T) {
	a, _ := newAssembler(t)

	msgs, err := a.BuildQuestion("How do I start running?", "", nil)
	require.NoError(t, err)
	require.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: QAPrompt},
		{Role: domain.RoleUser, Content: "How do I start running?"},
	}, msgs)

	msgs, err = a.BuildQuestion("again", RequestTypeAlternative, &domain.User{Name: "Mina"})
	require.NoError(t, err)
	require.Equal(t, QAPrompt+alternativeClause+"\n\n[사용자 정보: Mina님을 위한 맞춤 조언]", msgs[0].Content)

	_, err = a.BuildQuestion("", "", nil)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestBuildConversation(t *testing.T) {
	a, _ := newAssembler(t)

	in := []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}
	out, err := a.BuildConversation(in)
	require.NoError(t, err)
	require.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: DefaultSystemPrompt},
		{Role: domain.RoleUser, Content: "hi"},
	}, out)
	require.Len(t, in, 1)

	withSystem := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleSystem, Content: "be brief"},
	}
	out, err = a.BuildConversation(withSystem)
	require.NoError(t, err)
	require.Equal(t, withSystem, out)

	_, err = a.BuildConversation(nil)
	require.Error(t, err)
	_, err = a.BuildConversation([]domain.ChatMessage{{Role: "tool", Content: "x"}})
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestExcerpt(t *testing.T) {
	require.Equal(t, "short", Excerpt("short", 100))
	long := strings.Repeat("가", 120)
	got := Excerpt(long, 100)
	require.Equal(t, strings.Repeat("가", 100)+"...", got)
	require.Equal(t, strings.Repeat("a", 100), Excerpt(strings.Repeat("a", 100), 100))
}
