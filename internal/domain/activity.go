// File: internal/domain/activity.go
package domain

import "time"

const (
	ActivityChatConversation = "chat_conversation"
	ActivityHabitSelected    = "habit_selected"
	ActivityHabitQARequest   = "habit_qa_request"
)

// ActivityRecord is an append-only audit entry. Never mutated once stored.
type ActivityRecord struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	UserID     string    `json:"-" gorm:"index;not null;size:32"`
	Activity   string    `json:"activity" gorm:"not null"`
	Timestamp  string    `json:"timestamp"`
	Category   string    `json:"category,omitempty"`
	Habit      string    `json:"habit,omitempty"`
	Question   string    `json:"question,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}
