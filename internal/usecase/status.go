package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NewsDesk/internal/clock"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/ports"
	"NewsDesk/internal/state"
)

// StatusEngine moves articles through the review workflow.
type StatusEngine struct {
	gateway  ports.NewsGateway
	store    *state.Store
	notifier ports.Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewStatusEngine constructs the status use case.
func NewStatusEngine(deps Deps) *StatusEngine {
	return &StatusEngine{
		gateway:  deps.Gateway,
		store:    deps.Store,
		notifier: deps.Notifier,
		clock:    deps.clock(),
		logger:   deps.logger(),
	}
}

// IsAllowed is the pure transition table check.
func (e *StatusEngine) IsAllowed(current, next domain.Status) bool {
	return domain.IsTransitionAllowed(current, next)
}

// CanUpdate reports whether the article may move to next right now. Menu
// options should be disabled when it returns false.
func (e *StatusEngine) CanUpdate(articleID string, next domain.Status) bool {
	return e.store.CanTransition(articleID, next)
}

// Update sends the new status and commits it once the server confirms.
// Rejected transitions return an error wrapping state.ErrTransitionNotAllowed
// or state.ErrUpdateInFlight and have no side effects. Gateway failures are
// notified and returned; the status is left unchanged.
func (e *StatusEngine) Update(ctx context.Context, articleID string, next domain.Status) error {
	current, err := e.store.BeginStatusUpdate(articleID, next)
	if err != nil {
		e.logger.Debug("status update rejected",
			"article", articleID,
			"from", current,
			"to", next,
			"reason", err,
		)
		return fmt.Errorf("update status of article %s: %w", articleID, err)
	}

	e.logger.Debug("updating status", "article", articleID, "from", current, "to", next)

	res, err := e.gateway.UpdateStatus(ctx, articleID, next)
	if err != nil {
		e.store.FailStatusUpdate(articleID)
		e.notifier.Error(err.Error())
		e.logger.Warn("status update failed", "article", articleID, "to", next, "error", err)
		return fmt.Errorf("update status of article %s: %w", articleID, err)
	}

	e.store.CompleteStatusUpdate(articleID, next, e.clock.Now())

	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Article %s marked as %s", articleID, next)
	}
	e.notifier.Success(msg)
	e.logger.Info("status updated", "article", articleID, "status", next)

	return nil
}

// ToggleMenu opens or closes the status menu of one article.
func (e *StatusEngine) ToggleMenu(articleID string) (bool, error) {
	return e.store.ToggleDropdown(articleID)
}

// CloseMenus closes every open status menu.
func (e *StatusEngine) CloseMenus() {
	e.store.CloseDropdowns()
}
