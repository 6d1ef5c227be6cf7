// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iyunix/go-habitcoach/internal/config"
	"github.com/iyunix/go-habitcoach/internal/services"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("habitcoach")
	if z, ok := logger.(*services.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	app, err := InitializeApplication(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	// --- Server Configuration ---
	port := ":8000"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:              port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		// Must outlast the gateway call inside a chat request.
		WriteTimeout: cfg.GatewayTimeout + 15*time.Second,
	}

	logger.Info("server starting",
		"addr", port,
		"gateway_provider", cfg.GatewayProvider,
		"store_driver", cfg.StoreDriver,
		"history_window", cfg.HistoryWindow,
		"token_ttl", cfg.TokenTTL.String())

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go app.TokenService.RunSweeper(sweepCtx, time.Minute)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server startup failed", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
