package conversation

import (
	"context"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

// DefaultWindow is the number of recent turns used when a caller does not ask for a specific size.
const DefaultWindow = 20

// ConversationRepository owns each user's ordered turn log and focus topic.
// Mutations for one user are serialized; different users never contend.
type ConversationRepository interface {
	AppendUserTurn(ctx context.Context, userID, content string) (domain.Turn, error)
	AppendAssistantTurn(ctx context.Context, userID, content string) (domain.Turn, error)
	// AppendUserTurnWithContext captures the last window turns and the focus topic, then appends
	// the user turn, all under the user's lock. The returned conversation excludes the new turn.
	AppendUserTurnWithContext(ctx context.Context, userID, content string, window int) (domain.Turn, domain.Conversation, error)

	SetFocusTopic(ctx context.Context, userID string, topic domain.FocusTopic) error
	FocusTopic(ctx context.Context, userID string) (*domain.FocusTopic, error)

	History(ctx context.Context, userID string) ([]domain.Turn, error)
	RecentHistory(ctx context.Context, userID string, limit int) ([]domain.Turn, error)
	// Snapshot returns turns and topic as observed at a single instant.
	Snapshot(ctx context.Context, userID string) (domain.Conversation, error)

	// Clear drops turns and focus topic together.
	Clear(ctx context.Context, userID string) error
	CountTurns(ctx context.Context) (int64, error)
}
