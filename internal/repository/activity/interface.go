package activity

import (
	"context"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

// ActivityRepository is an append-only per-user audit log.
type ActivityRepository interface {
	Append(ctx context.Context, record *domain.ActivityRecord) error
	// FindByUserID returns the user's records oldest first.
	FindByUserID(ctx context.Context, userID string) ([]domain.ActivityRecord, error)
	CountAll(ctx context.Context) (int64, error)
}
