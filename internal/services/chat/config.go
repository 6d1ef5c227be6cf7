// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
	// Stored turns placed between the system prompt and the new user turn.
	HistoryWindow int

	// Rune cap applied to questions and messages copied into activity records.
	ActivityExcerptLen int
}

func (c *Config) Validate() error {
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("history_window must be positive")
	}
	if c.ActivityExcerptLen <= 0 {
		return fmt.Errorf("activity_excerpt_len must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		HistoryWindow:      20,
		ActivityExcerptLen: 100,
	}
}
