// File: internal/services/chat/text.go
package chat

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// TruncateText cuts input to maxLen runes, never splitting a character.
func TruncateText(input string, maxLen int) string {
	if input == "" || maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(input) <= maxLen {
		return input
	}

	var b strings.Builder
	count := 0
	for _, r := range input {
		if count >= maxLen {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}

// Excerpt is TruncateText with an ellipsis marker when anything was cut.
func Excerpt(input string, maxLen int) string {
	if utf8.RuneCountInString(input) <= maxLen {
		return input
	}
	return TruncateText(input, maxLen) + ellipsis
}
