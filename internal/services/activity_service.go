// File: internal/services/activity_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/repository/activity"
	chatservice "github.com/iyunix/go-habitcoach/internal/services/chat"
)

// ActivityEntry is a client-reported activity.
type ActivityEntry struct {
	Activity  string
	Timestamp string
	Category  string
	Habit     string
}

// ActivityService is the activity recorder. Record is best effort; Log and List are
// ordinary operations and report their failures.
type ActivityService struct {
	repo       activity.ActivityRepository
	excerptLen int
	now        func() time.Time
	logger     Logger
}

func NewActivityService(repo activity.ActivityRepository, excerptLen int, logger Logger) *ActivityService {
	if excerptLen <= 0 {
		excerptLen = chatservice.DefaultConfig().ActivityExcerptLen
	}
	return &ActivityService{repo: repo, excerptLen: excerptLen, now: time.Now, logger: logger}
}

// Record appends a server-generated activity. It never fails the caller: errors and panics
// are logged and dropped.
func (s *ActivityService) Record(ctx context.Context, userID, kind, category, habit, question string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("activity recording panicked",
				"user_id", userID,
				"activity", kind,
				"panic", fmt.Sprint(r))
		}
	}()

	now := s.now().UTC()
	record := &domain.ActivityRecord{
		UserID:     userID,
		Activity:   kind,
		Timestamp:  now.Format(time.RFC3339Nano),
		Category:   category,
		Habit:      habit,
		Question:   chatservice.Excerpt(question, s.excerptLen),
		RecordedAt: now,
	}
	if err := s.repo.Append(ctx, record); err != nil {
		s.logger.Error("activity recording failed",
			"error", err,
			"user_id", userID,
			"activity", kind)
	}
}

// Log stores an activity reported by the client, stamped with the server's RecordedAt.
func (s *ActivityService) Log(ctx context.Context, userID string, entry ActivityEntry) (*domain.ActivityRecord, error) {
	if strings.TrimSpace(entry.Activity) == "" {
		return nil, domain.NewValidationError("activity is required")
	}
	if strings.TrimSpace(entry.Timestamp) == "" {
		return nil, domain.NewValidationError("timestamp is required")
	}

	record := &domain.ActivityRecord{
		UserID:     userID,
		Activity:   entry.Activity,
		Timestamp:  entry.Timestamp,
		Category:   entry.Category,
		Habit:      entry.Habit,
		RecordedAt: s.now().UTC(),
	}
	if err := s.repo.Append(ctx, record); err != nil {
		s.logger.Error("activity log failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to store activity: %w", err)
	}
	return record, nil
}

func (s *ActivityService) List(ctx context.Context, userID string) ([]domain.ActivityRecord, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *ActivityService) Total(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}
