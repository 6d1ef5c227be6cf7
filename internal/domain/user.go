// File: internal/domain/user.go
package domain

import (
	"strings"
	"time"
)

// JoinDateLayout is the calendar-day format used for User.JoinDate.
const JoinDateLayout = "2006-01-02"

type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	JoinDate     string     `json:"joinDate" gorm:"size:10"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`
}

// ProfileUpdate carries the optional fields of a profile change. Nil means "leave as is".
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// MaskEmail keeps enough of an address to correlate log lines without exposing it.
func MaskEmail(email string) string {
	local, host, found := strings.Cut(email, "@")
	if len(local) > 3 {
		local = local[:3]
	}
	if !found {
		return local + "***"
	}
	return local + "***@" + host
}
