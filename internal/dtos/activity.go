// File: internal/dtos/activity.go
package dtos

import (
	"time"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

type ActivityLogRequestDTO struct {
	Activity  string `json:"activity"`
	Timestamp string `json:"timestamp"`
	Category  string `json:"category,omitempty"`
	Habit     string `json:"habit,omitempty"`
}

type ActivityDTO struct {
	Activity   string `json:"activity"`
	Timestamp  string `json:"timestamp"`
	Category   string `json:"category,omitempty"`
	Habit      string `json:"habit,omitempty"`
	Question   string `json:"question,omitempty"`
	RecordedAt string `json:"recordedAt"`
}

type ActivityLogResponseDTO struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Activity ActivityDTO `json:"activity"`
}

type ActivitiesResponseDTO struct {
	Success    bool          `json:"success"`
	Activities []ActivityDTO `json:"activities"`
	Total      int           `json:"total"`
}

type StatusResponseDTO struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	UsersCount      int64  `json:"users_count"`
	ActiveSessions  int    `json:"active_sessions"`
	TotalActivities int64  `json:"total_activities"`
}

func ActivityFromDomain(record domain.ActivityRecord) ActivityDTO {
	return ActivityDTO{
		Activity:   record.Activity,
		Timestamp:  record.Timestamp,
		Category:   record.Category,
		Habit:      record.Habit,
		Question:   record.Question,
		RecordedAt: record.RecordedAt.Format(time.RFC3339Nano),
	}
}

func ActivitiesFromDomain(records []domain.ActivityRecord) []ActivityDTO {
	out := make([]ActivityDTO, len(records))
	for i, r := range records {
		out[i] = ActivityFromDomain(r)
	}
	return out
}
