// File: internal/services/gateway/openai_client.go
package gateway

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

// OpenAIClient talks to any OpenAI-compatible chat completion API.
type OpenAIClient struct {
	config *Config
	client *openai.Client
}

func NewOpenAIClient(config *Config) *OpenAIClient {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.URL != "" && config.URL != DefaultURL {
		clientConfig.BaseURL = config.URL
	}
	return &OpenAIClient{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *OpenAIClient) Complete(ctx context.Context, messages []domain.ChatMessage) (*Completion, error) {
	const op = "chat_completion"

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.config.Model,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, newUpstreamError(op, apiErr.HTTPStatusCode, apiErr.Message)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			ge := newUpstreamError(op, reqErr.HTTPStatusCode, reqErr.HTTPStatus)
			ge.Cause = reqErr.Err
			return nil, ge
		}
		return nil, classifyTransportError(op, ctx, err)
	}

	if len(resp.Choices) == 0 {
		return nil, newMalformedError(op, "response has no choices", nil)
	}

	return &Completion{Reply: resp.Choices[0].Message.Content, Usage: resp.Usage}, nil
}
