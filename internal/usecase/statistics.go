package usecase

import (
	"context"
	"log/slog"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/clock"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/ports"
	"NewsDesk/internal/state"
)

const fetchStatisticsContext = "Failed to fetch statistics"

// StatisticsLoader refreshes the per-source counters.
type StatisticsLoader struct {
	gateway ports.NewsGateway
	store   *state.Store
	clock   clock.Clock
	logger  *slog.Logger
}

// NewStatisticsLoader constructs the statistics use case.
func NewStatisticsLoader(deps Deps) *StatisticsLoader {
	return &StatisticsLoader{
		gateway: deps.Gateway,
		store:   deps.Store,
		clock:   deps.clock(),
		logger:  deps.logger(),
	}
}

// Load fetches and aggregates the counters. Failures keep the previous
// counters and are recorded next to them.
func (l *StatisticsLoader) Load(ctx context.Context) error {
	records, err := l.gateway.Statistics(ctx)
	if err != nil {
		appErr := apperror.New(err, fetchStatisticsContext, l.clock.Now())
		l.store.SetStatistics(nil, appErr)
		logAppError(l.logger, "load statistics", appErr)
		return appErr
	}

	l.store.SetStatistics(domain.AggregateStatistics(records), nil)
	l.logger.Debug("statistics loaded", "buckets", len(records))
	return nil
}
