package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/allisson/weathervane/internal/app"
	"github.com/allisson/weathervane/internal/config"
)

// RunNotifier starts the outbox notification worker with graceful shutdown
// support. The worker drains pending outbox events on a ticker until
// receiving SIGINT/SIGTERM.
func RunNotifier(ctx context.Context) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting notifier worker")

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get outbox use case from container
	outboxUseCase, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox use case: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := outboxUseCase.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("notifier worker error: %w", err)
	}

	logger.Info("notifier worker stopped")
	return nil
}
