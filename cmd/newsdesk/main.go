package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"NewsDesk/internal/app"
	"NewsDesk/internal/commands"
	"NewsDesk/internal/config"
	"NewsDesk/internal/logging"
)

type closer interface {
	Close(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	err := commands.New(application).ExecuteContext(ctx)
	shutdown(application, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func shutdown(c closer, logger *slog.Logger) {
	if err := c.Close(context.Background()); err != nil {
		logger.Error("application shutdown failed", "error", err)
	}
}
