// File: cmd/diagnostic/gateway_diagnostic.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/iyunix/go-habitcoach/internal/config"
	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/services/gateway"
)

// Sends one fixed prompt through the configured gateway and reports what came back.
func main() {
	cfg := config.Load()

	gwConfig := gateway.DefaultConfig()
	gwConfig.URL = cfg.GatewayURL
	gwConfig.APIKey = cfg.GatewayAPIKey
	gwConfig.Model = cfg.GatewayModel
	gwConfig.Timeout = cfg.GatewayTimeout

	fmt.Printf("Testing %s gateway at %s (timeout %s)\n", cfg.GatewayProvider, gwConfig.URL, gwConfig.Timeout)

	client, err := gateway.New(cfg.GatewayProvider, gwConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gateway configuration invalid: %v\n", err)
		os.Exit(2)
	}

	out, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "You are a helpful assistant."},
		{Role: domain.RoleUser, Content: "Suggest one two-minute habit for better sleep."},
	})
	if err != nil {
		var ge *gateway.GatewayError
		if errors.As(err, &ge) {
			fmt.Fprintf(os.Stderr, "FAILED kind=%s type=%s status=%d detail=%q\n", domain.KindOf(err), ge.Type, ge.Code, ge.Detail)
		} else {
			fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Reply: %s\n", out.Reply)
	fmt.Printf("Usage: prompt=%d completion=%d total=%d\n",
		out.Usage.PromptTokens, out.Usage.CompletionTokens, out.Usage.TotalTokens)
}
