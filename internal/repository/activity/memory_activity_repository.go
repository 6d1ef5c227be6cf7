package activity

import (
	"context"
	"sync"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

type memoryActivityRepository struct {
	mu     sync.RWMutex
	byUser map[string][]domain.ActivityRecord
	total  int64
	nextID uint
}

func NewMemoryActivityRepository() ActivityRepository {
	return &memoryActivityRepository{byUser: make(map[string][]domain.ActivityRecord)}
}

func (r *memoryActivityRepository) Append(ctx context.Context, record *domain.ActivityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	record.ID = r.nextID
	r.byUser[record.UserID] = append(r.byUser[record.UserID], *record)
	r.total++
	return nil
}

func (r *memoryActivityRepository) FindByUserID(ctx context.Context, userID string) ([]domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.byUser[userID]
	out := make([]domain.ActivityRecord, len(records))
	copy(out, records)
	return out, nil
}

func (r *memoryActivityRepository) CountAll(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total, nil
}
