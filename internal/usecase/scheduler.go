package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsDesk/internal/ports"
)

// AutoRefresh wires a periodic driver to the soft listing refresh.
type AutoRefresh struct {
	driver  ports.Scheduler
	fetcher *FetchCoordinator
	logger  *slog.Logger
}

// NewAutoRefresh returns a helper to start and stop background refreshes.
func NewAutoRefresh(driver ports.Scheduler, fetcher *FetchCoordinator, logger *slog.Logger) *AutoRefresh {
	return &AutoRefresh{driver: driver, fetcher: fetcher, logger: logger}
}

// Start registers the refresh job with the driver.
func (a *AutoRefresh) Start(ctx context.Context) error {
	if a.driver == nil || a.fetcher == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if err := a.fetcher.Refresh(ctx); err != nil && a.logger != nil {
			a.logger.Debug("background refresh failed", "trigger", trigger, "error", err)
		}
	}

	return a.driver.Start(ctx, job)
}

// Stop tears down the driver.
func (a *AutoRefresh) Stop(ctx context.Context) error {
	if a.driver == nil {
		return nil
	}

	return a.driver.Stop(ctx)
}
