// File: internal/services/status_service.go
package services

import (
	"context"
	"time"
)

type Status struct {
	Status          string
	Timestamp       time.Time
	UsersCount      int64
	ActiveSessions  int
	TotalActivities int64
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type sessionCounter interface {
	ActiveCount(ctx context.Context) int
}

// StatusService reports process health and aggregate counters. It has no side effects.
type StatusService struct {
	users      userCounter
	sessions   sessionCounter
	activities *ActivityService
	now        func() time.Time
}

func NewStatusService(users userCounter, sessions sessionCounter, activities *ActivityService) *StatusService {
	return &StatusService{users: users, sessions: sessions, activities: activities, now: time.Now}
}

func (s *StatusService) Status(ctx context.Context) (*Status, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.activities.Total(ctx)
	if err != nil {
		return nil, err
	}
	return &Status{
		Status:          "healthy",
		Timestamp:       s.now().UTC(),
		UsersCount:      users,
		ActiveSessions:  s.sessions.ActiveCount(ctx),
		TotalActivities: total,
	}, nil
}
