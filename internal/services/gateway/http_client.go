// File: internal/services/gateway/http_client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

const maxResponseBytes = 4 << 20

// HTTPClient posts the bare message array to a fixed endpoint and expects an
// OpenAI-shaped response body ({"choices":[{"message":{...}}],"usage":{...}}).
type HTTPClient struct {
	config     *Config
	httpClient *http.Client
}

// envelope uses pointers so absent fields can be told apart from zero values.
type envelope struct {
	Choices []choice      `json:"choices"`
	Usage   *openai.Usage `json:"usage"`
}

type choice struct {
	Message *struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
}

func NewHTTPClient(config *Config, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPClient{config: config, httpClient: httpClient}
}

func (c *HTTPClient) Complete(ctx context.Context, messages []domain.ChatMessage) (*Completion, error) {
	const op = "complete"

	body, err := json.Marshal(toOpenAIMessages(messages))
	if err != nil {
		return nil, newMalformedError(op, "could not encode request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, NewConfigError("invalid gateway URL: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(op, ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(op, ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newUpstreamError(op, resp.StatusCode, c.detail(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, newMalformedError(op, "response is not valid JSON", err)
	}
	if len(env.Choices) == 0 {
		return nil, newMalformedError(op, "response has no choices", nil)
	}
	msg := env.Choices[0].Message
	if msg == nil {
		return nil, newMalformedError(op, "response choice has no message", nil)
	}
	if msg.Content == nil {
		return nil, newMalformedError(op, "response message has no content", nil)
	}
	if env.Usage == nil {
		return nil, newMalformedError(op, "response has no usage", nil)
	}

	return &Completion{Reply: *msg.Content, Usage: *env.Usage}, nil
}

// detail cuts the body to MaxDetailBytes without splitting a rune.
func (c *HTTPClient) detail(raw []byte) string {
	if len(raw) <= c.config.MaxDetailBytes {
		return string(raw)
	}
	cut := c.config.MaxDetailBytes
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return string(raw[:cut])
}

// classifyTransportError separates our own deadline from every other transport failure.
func classifyTransportError(op string, ctx context.Context, err error) *GatewayError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newTimeoutError(op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newTimeoutError(op, err)
	}
	if errors.Is(err, context.Canceled) {
		return newNetworkError(op, "request cancelled", err)
	}
	return newNetworkError(op, "transport failure", err)
}
