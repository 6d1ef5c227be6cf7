// File: internal/services/gateway/config.go
package gateway

import (
	"fmt"
	"time"
)

const DefaultURL = "https://dev.wenivops.co.kr/services/openai-api"

type Config struct {
	// Endpoint. For the openai provider this is the API base URL and may be empty.
	URL    string
	APIKey string
	Model  string

	Timeout time.Duration

	// Upper bound on the upstream body echoed into GatewayError.Detail.
	MaxDetailBytes int
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxDetailBytes < 0 {
		return fmt.Errorf("max detail bytes cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		URL:            DefaultURL,
		Timeout:        30 * time.Second,
		MaxDetailBytes: 512,
	}
}
