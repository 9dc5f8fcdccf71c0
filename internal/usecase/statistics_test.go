package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/infrastructure/scheduler"
)

func TestStatisticsLoad(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.gw.statistics = func(context.Context) ([]domain.StatisticsRecord, error) {
		return []domain.StatisticsRecord{
			{Source: "SFC", Status: "PENDING", RecordCount: 4},
			{Source: "SFC", Status: "VERIFIED", RecordCount: 2},
			{Source: "HKMA", Status: "DISCARD", RecordCount: 1},
		}, nil
	}

	loader := NewStatisticsLoader(f.deps)
	require.NoError(t, loader.Load(context.Background()))

	snap := f.store.Snapshot()
	require.Equal(t, domain.SourceStatistics{ToProcess: 4, Processed: 2}, snap.Statistics[domain.SourceSFC])
	require.Equal(t, domain.SourceStatistics{Processed: 1}, snap.Statistics[domain.SourceHKMA])
	require.Contains(t, snap.Statistics, domain.SourceHKEX)
	require.Nil(t, snap.StatisticsErr)

	f.gw.statistics = func(context.Context) ([]domain.StatisticsRecord, error) {
		return nil, apperror.FromResponse(502, "")
	}
	require.Error(t, loader.Load(context.Background()))

	snap = f.store.Snapshot()
	require.NotNil(t, snap.StatisticsErr)
	require.Equal(t, domain.SourceStatistics{ToProcess: 4, Processed: 2}, snap.Statistics[domain.SourceSFC], "previous counters are kept")
}

func TestAutoRefreshUsesLightReload(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.load(t)

	refresh := NewAutoRefresh(scheduler.NewTickerScheduler(f.clk, time.Minute), NewFetchCoordinator(f.deps), f.deps.Logger)
	require.NoError(t, refresh.Start(context.Background()))

	f.clk.Advance(time.Minute)
	require.Equal(t, 2, f.gw.queryCount())

	require.NoError(t, refresh.Stop(context.Background()))
	f.clk.Advance(time.Minute)
	require.Equal(t, 2, f.gw.queryCount())
}
