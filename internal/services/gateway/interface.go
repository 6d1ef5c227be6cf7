// File: internal/services/gateway/interface.go
package gateway

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

const (
	ProviderBootcamp = "bootcamp"
	ProviderOpenAI   = "openai"
)

// Completion is the normalized result of one gateway call.
type Completion struct {
	Reply string       `json:"reply"`
	Usage openai.Usage `json:"usage"`
}

// Client sends an ordered message list to the completion service. It knows nothing about
// users or stored conversations. Failures are always *GatewayError.
type Client interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (*Completion, error)
}

// New builds the client for the named provider.
func New(provider string, cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	switch provider {
	case "", ProviderBootcamp:
		if cfg.URL == "" {
			return nil, NewConfigError("gateway URL is required")
		}
		return NewHTTPClient(cfg, nil), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, NewConfigError("API key is required for the openai provider")
		}
		return NewOpenAIClient(cfg), nil
	default:
		return nil, NewConfigError(fmt.Sprintf("unknown provider %q", provider))
	}
}

func toOpenAIMessages(messages []domain.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}
