package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/clock"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/logging"
	"NewsDesk/internal/notify"
	"NewsDesk/internal/state"
)

type fakeGateway struct {
	mu sync.Mutex

	grouped       func(ctx context.Context, q domain.NewsQuery) ([]domain.Article, error)
	updateStatus  func(ctx context.Context, id string, s domain.Status) (domain.StatusUpdateResult, error)
	updateContent func(ctx context.Context, id string, p domain.ContentPatch) (domain.ContentUpdateResult, error)
	emailHTML     func(ctx context.Context, ids []int64) (string, error)
	statistics    func(ctx context.Context) ([]domain.StatisticsRecord, error)

	queries     []domain.NewsQuery
	statusCalls int
	patches     []domain.ContentPatch
	emailCalls  [][]int64
	statsCalls  int
}

func (g *fakeGateway) Statistics(ctx context.Context) ([]domain.StatisticsRecord, error) {
	g.mu.Lock()
	g.statsCalls++
	fn := g.statistics
	g.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (g *fakeGateway) GroupedNews(ctx context.Context, q domain.NewsQuery) ([]domain.Article, error) {
	g.mu.Lock()
	g.queries = append(g.queries, q)
	fn := g.grouped
	g.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, q)
}

func (g *fakeGateway) UpdateStatus(ctx context.Context, id string, s domain.Status) (domain.StatusUpdateResult, error) {
	g.mu.Lock()
	g.statusCalls++
	fn := g.updateStatus
	g.mu.Unlock()
	if fn == nil {
		return domain.StatusUpdateResult{ID: id, Status: s}, nil
	}
	return fn(ctx, id, s)
}

func (g *fakeGateway) UpdateContent(ctx context.Context, id string, p domain.ContentPatch) (domain.ContentUpdateResult, error) {
	g.mu.Lock()
	g.patches = append(g.patches, p)
	fn := g.updateContent
	g.mu.Unlock()
	if fn == nil {
		return domain.ContentUpdateResult{ID: id}, nil
	}
	return fn(ctx, id, p)
}

func (g *fakeGateway) EmailHTML(ctx context.Context, ids []int64) (string, error) {
	g.mu.Lock()
	g.emailCalls = append(g.emailCalls, append([]int64(nil), ids...))
	fn := g.emailHTML
	g.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(ctx, ids)
}

func (g *fakeGateway) queryCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.queries)
}

type fakeRenderer struct{}

func (fakeRenderer) Render(html string) (domain.ReportPreview, error) {
	return domain.ReportPreview{Raw: html, Safe: html, Text: "text:" + html}, nil
}

type fakeClipboard struct {
	richErr error
	textErr error
	rich    []string
	text    []string
}

func (c *fakeClipboard) WriteRich(html, _ string) error {
	if c.richErr != nil {
		return c.richErr
	}
	c.rich = append(c.rich, html)
	return nil
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.textErr != nil {
		return c.textErr
	}
	c.text = append(c.text, text)
	return nil
}

type fixture struct {
	gw    *fakeGateway
	store *state.Store
	queue *notify.Queue
	clk   *clock.FakeClock
	clip  *fakeClipboard
	deps  Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dr, err := domain.ParseDateRange("2024-01-01", "2024-01-07")
	require.NoError(t, err)

	gw := &fakeGateway{}
	store := state.NewStore(domain.Filters{DateRange: dr, Source: domain.AllSources, Status: domain.AllStatuses})
	clk := clock.Fake(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))
	queue := notify.NewQueue(clk)
	t.Cleanup(queue.Close)
	clip := &fakeClipboard{}

	return &fixture{
		gw:    gw,
		store: store,
		queue: queue,
		clk:   clk,
		clip:  clip,
		deps: Deps{
			Gateway:   gw,
			Store:     store,
			Notifier:  queue,
			Renderer:  fakeRenderer{},
			Clipboard: clip,
			Clock:     clk,
			Retry:     apperror.DefaultRetryPolicy,
			Logger:    logging.Discard(),
		},
	}
}

// load seeds the store through a successful full load.
func (f *fixture) load(t *testing.T, articles ...domain.Article) {
	t.Helper()
	f.gw.grouped = func(context.Context, domain.NewsQuery) ([]domain.Article, error) {
		return articles, nil
	}
	require.NoError(t, NewFetchCoordinator(f.deps).Load(context.Background()))
}

func newsItem(id string, src domain.Source, status domain.Status) domain.Article {
	return domain.Article{
		ID:           id,
		Source:       src,
		PublishedAt:  time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
		Title:        "title " + id,
		AISummary:    "summary " + id,
		ServerStatus: status,
	}
}
