package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/clock"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/ports"
	"NewsDesk/internal/state"
)

const loadArticlesContext = "Failed to load articles"

// FetchCoordinator loads the article listing for the active filters.
type FetchCoordinator struct {
	gateway ports.NewsGateway
	store   *state.Store
	clock   clock.Clock
	retry   apperror.RetryPolicy
	logger  *slog.Logger
}

// NewFetchCoordinator constructs the listing use case. A zero Retry policy
// disables automatic retries.
func NewFetchCoordinator(deps Deps) *FetchCoordinator {
	return &FetchCoordinator{
		gateway: deps.Gateway,
		store:   deps.Store,
		clock:   deps.clock(),
		retry:   deps.Retry,
		logger:  deps.logger(),
	}
}

// Load performs the first load with the full-page indicator.
func (c *FetchCoordinator) Load(ctx context.Context) error {
	return c.run(ctx, state.LoadFull)
}

// Refetch repeats the load with the full-page indicator, as after a retry.
func (c *FetchCoordinator) Refetch(ctx context.Context) error {
	return c.run(ctx, state.LoadFull)
}

// Refresh reloads behind the inline indicator, keeping the list visible.
func (c *FetchCoordinator) Refresh(ctx context.Context) error {
	return c.run(ctx, state.LoadLight)
}

// SetFilters applies a new filter set and reloads when anything changed.
func (c *FetchCoordinator) SetFilters(ctx context.Context, filters domain.Filters) error {
	if !c.store.SetFilters(filters) {
		return nil
	}
	return c.run(ctx, state.LoadLight)
}

// SetDateRange changes only the date range.
func (c *FetchCoordinator) SetDateRange(ctx context.Context, dr domain.DateRange) error {
	f := c.store.Filters()
	f.DateRange = dr
	return c.SetFilters(ctx, f)
}

// SetSourceFilter changes only the source filter.
func (c *FetchCoordinator) SetSourceFilter(ctx context.Context, source domain.SourceFilter) error {
	f := c.store.Filters()
	f.Source = source
	return c.SetFilters(ctx, f)
}

// SetStatusFilter changes only the status filter.
func (c *FetchCoordinator) SetStatusFilter(ctx context.Context, status domain.StatusFilter) error {
	f := c.store.Filters()
	f.Status = status
	return c.SetFilters(ctx, f)
}

// run fetches under a fresh sequence token. A result that arrives after a
// newer fetch was issued is dropped without touching the store.
func (c *FetchCoordinator) run(ctx context.Context, mode state.LoadMode) error {
	seq := c.store.BeginFetch(mode)
	query := c.store.Filters().Query()
	started := c.clock.Now()

	c.logger.Debug("fetching articles",
		"seq", seq,
		"start", query.StartDate,
		"end", query.EndDate,
		"sources", query.Sources,
		"status", query.Status,
	)

	var articles []domain.Article
	fetch := func(ctx context.Context) error {
		res, err := c.gateway.GroupedNews(ctx, query)
		if err != nil {
			c.logger.Debug("fetch attempt failed", "seq", seq, "error", err)
			return err
		}
		articles = res
		return nil
	}

	var err error
	if mode == state.LoadFull {
		err = apperror.Retry(ctx, c.clock, c.retry, fetch)
	} else {
		err = fetch(ctx)
	}

	if err != nil {
		appErr := apperror.New(err, loadArticlesContext, c.clock.Now())
		if !c.store.FailFetch(seq, appErr) {
			c.logger.Debug("discarded superseded fetch failure", "seq", seq)
			return nil
		}
		logAppError(c.logger, "load articles", appErr, "seq", seq)
		return appErr
	}

	if !c.store.CompleteFetch(seq, articles) {
		c.logger.Debug("discarded superseded fetch result", "seq", seq)
		return nil
	}

	c.logger.Debug("articles loaded",
		"seq", seq,
		"count", len(articles),
		"elapsed", c.clock.Now().Sub(started).Round(time.Millisecond),
	)
	return nil
}
