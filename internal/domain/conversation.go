// File: internal/domain/conversation.go
package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is a single stored exchange unit in a user's conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// FocusTopic is the habit the user is currently working on.
type FocusTopic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// IsZero reports whether no field of the topic carries a value.
func (t FocusTopic) IsZero() bool {
	return t.Title == "" && t.Description == "" && t.Category == ""
}

// Conversation is a point-in-time copy of a user's conversation state.
type Conversation struct {
	Turns []Turn
	Topic *FocusTopic
}

// ChatMessage is one element of the message array sent to the completion gateway.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// AsMessage strips the timestamp for gateway use.
func (t Turn) AsMessage() ChatMessage {
	return ChatMessage{Role: t.Role, Content: t.Content}
}
