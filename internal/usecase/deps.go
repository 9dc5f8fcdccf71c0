package usecase

import (
	"log/slog"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/clock"
	"NewsDesk/internal/logging"
	"NewsDesk/internal/ports"
	"NewsDesk/internal/state"
)

// Deps wires the driven adapters and the shared store into the use cases.
// Each use case only reads the fields it needs.
type Deps struct {
	Gateway   ports.NewsGateway
	Store     *state.Store
	Notifier  ports.Notifier
	Renderer  ports.ReportRenderer
	Clipboard ports.Clipboard
	Clock     clock.Clock
	Retry     apperror.RetryPolicy
	Logger    *slog.Logger
}

func (d Deps) clock() clock.Clock {
	if d.Clock == nil {
		return clock.Real()
	}
	return d.Clock
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger
}

// logAppError logs transport and server failures at error level and the
// rest at warn.
func logAppError(logger *slog.Logger, msg string, appErr *apperror.AppError, args ...any) {
	args = append(args, "kind", appErr.Kind, "details", appErr.Details)
	if appErr.Severe() {
		logger.Error(msg, args...)
		return
	}
	logger.Warn(msg, args...)
}
