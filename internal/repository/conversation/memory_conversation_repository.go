package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

type shard struct {
	mu    sync.RWMutex
	turns []domain.Turn
	topic *domain.FocusTopic
}

type memoryConversationRepository struct {
	mu     sync.RWMutex
	shards map[string]*shard
	now    func() time.Time
}

func NewMemoryConversationRepository() ConversationRepository {
	return &memoryConversationRepository{
		shards: make(map[string]*shard),
		now:    time.Now,
	}
}

// shard returns the user's shard, creating it when create is set. The map lock is released
// before the caller takes the shard lock.
func (r *memoryConversationRepository) shard(userID string, create bool) *shard {
	r.mu.RLock()
	s, ok := r.shards[userID]
	r.mu.RUnlock()
	if ok || !create {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok = r.shards[userID]; !ok {
		s = &shard{}
		r.shards[userID] = s
	}
	return s
}

func (r *memoryConversationRepository) append(userID string, role domain.Role, content string) domain.Turn {
	s := r.shard(userID, true)
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := domain.Turn{Role: role, Content: content, Timestamp: r.now().UTC()}
	s.turns = append(s.turns, turn)
	return turn
}

func (r *memoryConversationRepository) AppendUserTurn(ctx context.Context, userID, content string) (domain.Turn, error) {
	return r.append(userID, domain.RoleUser, content), nil
}

func (r *memoryConversationRepository) AppendAssistantTurn(ctx context.Context, userID, content string) (domain.Turn, error) {
	return r.append(userID, domain.RoleAssistant, content), nil
}

func (r *memoryConversationRepository) AppendUserTurnWithContext(ctx context.Context, userID, content string, window int) (domain.Turn, domain.Conversation, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	s := r.shard(userID, true)
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := domain.Conversation{Turns: tail(s.turns, window), Topic: copyTopic(s.topic)}
	turn := domain.Turn{Role: domain.RoleUser, Content: content, Timestamp: r.now().UTC()}
	s.turns = append(s.turns, turn)
	return turn, snapshot, nil
}

func (r *memoryConversationRepository) SetFocusTopic(ctx context.Context, userID string, topic domain.FocusTopic) error {
	s := r.shard(userID, true)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.topic = &topic
	return nil
}

func (r *memoryConversationRepository) FocusTopic(ctx context.Context, userID string) (*domain.FocusTopic, error) {
	s := r.shard(userID, false)
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTopic(s.topic), nil
}

func (r *memoryConversationRepository) History(ctx context.Context, userID string) ([]domain.Turn, error) {
	return r.RecentHistory(ctx, userID, -1)
}

// RecentHistory returns the last limit turns oldest first. Zero means DefaultWindow, negative means all.
func (r *memoryConversationRepository) RecentHistory(ctx context.Context, userID string, limit int) ([]domain.Turn, error) {
	if limit == 0 {
		limit = DefaultWindow
	}
	s := r.shard(userID, false)
	if s == nil {
		return []domain.Turn{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tail(s.turns, limit), nil
}

func (r *memoryConversationRepository) Snapshot(ctx context.Context, userID string) (domain.Conversation, error) {
	s := r.shard(userID, false)
	if s == nil {
		return domain.Conversation{Turns: []domain.Turn{}}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Conversation{Turns: tail(s.turns, -1), Topic: copyTopic(s.topic)}, nil
}

func (r *memoryConversationRepository) Clear(ctx context.Context, userID string) error {
	s := r.shard(userID, false)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = nil
	s.topic = nil
	return nil
}

func (r *memoryConversationRepository) CountTurns(ctx context.Context) (int64, error) {
	r.mu.RLock()
	shards := make([]*shard, 0, len(r.shards))
	for _, s := range r.shards {
		shards = append(shards, s)
	}
	r.mu.RUnlock()

	var total int64
	for _, s := range shards {
		s.mu.RLock()
		total += int64(len(s.turns))
		s.mu.RUnlock()
	}
	return total, nil
}

// tail copies the last n turns; n < 0 copies all of them.
func tail(turns []domain.Turn, n int) []domain.Turn {
	start := 0
	if n >= 0 && len(turns) > n {
		start = len(turns) - n
	}
	out := make([]domain.Turn, len(turns)-start)
	copy(out, turns[start:])
	return out
}

func copyTopic(t *domain.FocusTopic) *domain.FocusTopic {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
