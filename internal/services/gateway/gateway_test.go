package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

func testConfig(url string) *Config {
	cfg := DefaultConfig()
	cfg.URL = url
	cfg.Timeout = 2 * time.Second
	return cfg
}

func TestHTTPClientSendsBareArray(t *testing.T) {
	var got []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Start with one glass of water."}}],"usage":{"prompt_tokens":12,"completion_tokens":7,"total_tokens":19}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), srv.Client())
	out, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "coach"},
		{Role: domain.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	require.Equal(t, "Start with one glass of water.", out.Reply)
	require.Equal(t, 19, out.Usage.TotalTokens)

	require.Len(t, got, 2)
	require.Equal(t, "system", got[0]["role"])
	require.Equal(t, "coach", got[0]["content"])
	require.Equal(t, "user", got[1]["role"])
	require.Equal(t, "hi", got[1]["content"])
}

func TestHTTPClientUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(testConfig(srv.URL), srv.Client()).Complete(context.Background(), nil)

	var ge *GatewayError
	require.True(t, errors.As(err, &ge))
	require.Equal(t, ErrTypeUpstream, ge.Type)
	require.Equal(t, http.StatusServiceUnavailable, ge.Code)
	require.Equal(t, "maintenance", ge.Detail)
	require.ErrorIs(t, err, domain.ErrGatewayError)
	require.Equal(t, domain.KindGatewayError, domain.KindOf(err))
}

func TestHTTPClientMalformedBodies(t *testing.T) {
	cases := map[string]string{
		"not json":      `<html>oops</html>`,
		"empty choices": `{"choices":[],"usage":{"total_tokens":1}}`,
		"no choices":    `{"usage":{"total_tokens":1}}`,
		"no usage":      `{"choices":[{"message":{"role":"assistant","content":"x"}}]}`,
		"empty choice":  `{"choices":[{}],"usage":{}}`,
		"null message":  `{"choices":[{"message":null}],"usage":{}}`,
		"index only":    `{"choices":[{"index":0}],"usage":{"total_tokens":3}}`,
		"no content":    `{"choices":[{"message":{"role":"assistant"}}],"usage":{"total_tokens":3}}`,
		"null content":  `{"choices":[{"message":{"role":"assistant","content":null}}],"usage":{}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := NewHTTPClient(testConfig(srv.URL), srv.Client()).Complete(context.Background(), nil)
			require.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := NewHTTPClient(cfg, srv.Client()).Complete(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrGatewayTimeout)
	require.Less(t, time.Since(start), time.Second)
}

func TestHTTPClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(testConfig(url), nil).Complete(context.Background(), nil)

	var ge *GatewayError
	require.True(t, errors.As(err, &ge))
	require.Equal(t, ErrTypeNetwork, ge.Type)
	require.Equal(t, domain.KindGatewayError, domain.KindOf(err))
}

func TestHTTPClientDetailIsTruncated(t *testing.T) {
	long := make([]byte, 2048)
	for i := range long {
		long[i] = 'x'
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write(long)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(testConfig(srv.URL), srv.Client()).Complete(context.Background(), nil)

	var ge *GatewayError
	require.True(t, errors.As(err, &ge))
	require.Len(t, ge.Detail, DefaultConfig().MaxDetailBytes)
}

func TestHTTPClientDetailKeepsRunesWhole(t *testing.T) {
	body := strings.Repeat("오류", 400)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxDetailBytes = 100
	_, err := NewHTTPClient(cfg, srv.Client()).Complete(context.Background(), nil)

	var ge *GatewayError
	require.True(t, errors.As(err, &ge))
	require.True(t, utf8.ValidString(ge.Detail))
	require.LessOrEqual(t, len(ge.Detail), 100)
	require.Equal(t, 99, len(ge.Detail))
	require.True(t, strings.HasPrefix(body, ge.Detail))
}

func TestOpenAIClientAgainstCompatibleServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4}}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = "sk-test"
	cfg.Model = "gpt-4o-mini"

	out, err := NewOpenAIClient(cfg).Complete(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	require.Equal(t, "ok", out.Reply)
	require.Equal(t, 4, out.Usage.TotalTokens)
}

func TestOpenAIClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = "sk-test"

	_, err := NewOpenAIClient(cfg).Complete(context.Background(), nil)

	var ge *GatewayError
	require.True(t, errors.As(err, &ge))
	require.Equal(t, ErrTypeUpstream, ge.Type)
	require.Equal(t, http.StatusTooManyRequests, ge.Code)
	require.Equal(t, "slow down", ge.Detail)
}

func TestNewSelectsProvider(t *testing.T) {
	cfg := DefaultConfig()

	c, err := New(ProviderBootcamp, cfg)
	require.NoError(t, err)
	require.IsType(t, &HTTPClient{}, c)

	_, err = New(ProviderOpenAI, cfg)
	require.Error(t, err)

	cfg.APIKey = "k"
	c, err = New(ProviderOpenAI, cfg)
	require.NoError(t, err)
	require.IsType(t, &OpenAIClient{}, c)

	_, err = New("smoke-signals", cfg)
	require.Equal(t, domain.KindInternal, domain.KindOf(err))
}
