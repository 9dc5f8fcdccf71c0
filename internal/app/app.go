package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/clock"
	"NewsDesk/internal/config"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/infrastructure/clipboard"
	"NewsDesk/internal/infrastructure/emailhtml"
	"NewsDesk/internal/infrastructure/newsapi"
	"NewsDesk/internal/infrastructure/scheduler"
	"NewsDesk/internal/logging"
	"NewsDesk/internal/notify"
	"NewsDesk/internal/ports"
	"NewsDesk/internal/state"
	"NewsDesk/internal/usecase"
)

// Application wires configs to use cases and owns the dashboard state for
// its whole lifetime.
type Application struct {
	cfg    config.Config
	logger *slog.Logger

	Store   *state.Store
	Queue   *notify.Queue
	Fetcher *usecase.FetchCoordinator
	Status  *usecase.StatusEngine
	Editor  *usecase.Editor
	Reports *usecase.Reporter
	Stats   *usecase.StatisticsLoader

	refresh *usecase.AutoRefresh
}

// Options replaces driven adapters; zero fields use the real ones.
type Options struct {
	Gateway   ports.NewsGateway
	Clipboard ports.Clipboard
	Clock     clock.Clock
}

// New builds a ready application bound to the configured API host.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	return NewWithOptions(cfg, baseLogger, Options{})
}

// NewWithOptions is New with adapter overrides.
func NewWithOptions(cfg config.Config, baseLogger *slog.Logger, opts Options) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}

	gateway := opts.Gateway
	if gateway == nil {
		gateway = newsapi.NewClient(cfg.API, baseLogger.With("component", "newsapi"))
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewSystem()
	}

	store := state.NewStore(initialFilters(cfg.Dashboard, clk, baseLogger))
	queue := notify.NewQueue(clk)

	deps := func(component string) usecase.Deps {
		return usecase.Deps{
			Gateway:   gateway,
			Store:     store,
			Notifier:  queue,
			Renderer:  emailhtml.NewRenderer(),
			Clipboard: clip,
			Clock:     clk,
			Retry:     apperror.DefaultRetryPolicy,
			Logger:    baseLogger.With("component", component),
		}
	}

	fetcher := usecase.NewFetchCoordinator(deps("fetch"))

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		Store:   store,
		Queue:   queue,
		Fetcher: fetcher,
		Status:  usecase.NewStatusEngine(deps("status")),
		Editor:  usecase.NewEditor(deps("editor")),
		Reports: usecase.NewReporter(deps("report")),
		Stats:   usecase.NewStatisticsLoader(deps("statistics")),
		refresh: usecase.NewAutoRefresh(
			scheduler.NewTickerScheduler(clk, cfg.Dashboard.RefreshInterval),
			fetcher,
			baseLogger.With("component", "refresh"),
		),
	}
}

// Start performs the initial load: statistics and the article listing run
// concurrently. A statistics failure is recorded in the store and does not
// fail Start; the listing error is returned.
func (a *Application) Start(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		if err := a.Stats.Load(ctx); err != nil {
			a.logger.Debug("statistics unavailable", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.Fetcher.Load(ctx)
	})

	return g.Wait()
}

// LoadWith replaces the filters and performs a full load with them.
func (a *Application) LoadWith(ctx context.Context, filters domain.Filters) error {
	a.Store.SetFilters(filters)
	return a.Fetcher.Load(ctx)
}

// StartAutoRefresh begins soft background reloads when an interval is
// configured.
func (a *Application) StartAutoRefresh(ctx context.Context) error {
	return a.refresh.Start(ctx)
}

// Close stops background work and pending notification timers.
func (a *Application) Close(ctx context.Context) error {
	err := a.refresh.Stop(ctx)
	a.Queue.Close()
	return err
}

// Config returns the configuration the application was built with.
func (a *Application) Config() config.Config {
	return a.cfg
}

func initialFilters(cfg config.DashboardConfig, clk clock.Clock, logger *slog.Logger) domain.Filters {
	period := domain.Period(cfg.DefaultPeriod)
	dr, err := period.Range(clk.Now())
	if err != nil {
		logger.Warn("invalid default period, using last 7 days", "period", cfg.DefaultPeriod)
		dr, _ = domain.PeriodLast7Days.Range(clk.Now())
	}

	return domain.Filters{
		DateRange: dr,
		Source:    domain.AllSources,
		Status:    domain.AllStatuses,
	}
}
