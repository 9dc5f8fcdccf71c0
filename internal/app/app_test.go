package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"NewsDesk/internal/clock"
	"NewsDesk/internal/config"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/logging"
)

type noopClipboard struct{}

func (noopClipboard) WriteRich(string, string) error { return nil }
func (noopClipboard) WriteText(string) error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var queries []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/news/statistics", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"source": "SFC", "status": "PENDING", "record_count": 3},
		})
	})
	mux.HandleFunc("/api/news/date-range/grouped", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()

		json.NewEncoder(w).Encode(map[string]any{
			"grouped_news": map[string]any{
				"SFC": []map[string]any{{
					"id":            42,
					"source":        "SFC",
					"issue_date":    "2024-01-05T09:30:00",
					"title":         "Circular on virtual assets",
					"creation_date": "2024-01-05T10:00:00",
					"creation_user": "crawler",
					"status":        "VERIFIED",
				}},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), queries...)
	}
}

func newTestApp(t *testing.T, baseURL string) *Application {
	t.Helper()

	cfg := config.Config{
		API:       config.APIConfig{BaseURL: baseURL, Timeout: time.Second},
		Dashboard: config.DashboardConfig{DefaultPeriod: "last-7-days"},
	}
	application := NewWithOptions(cfg, logging.Discard(), Options{
		Clipboard: noopClipboard{},
		Clock:     clock.Fake(time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)),
	})
	t.Cleanup(func() { application.Close(context.Background()) })
	return application
}

func TestStartLoadsListingAndStatistics(t *testing.T) {
	t.Parallel()

	srv, queries := newTestServer(t)
	application := newTestApp(t, srv.URL)

	if err := application.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	snap := application.Store.Snapshot()
	if len(snap.Articles) != 1 || snap.Articles[0].ID != "42" {
		t.Fatalf("unexpected articles: %+v", snap.Articles)
	}
	if snap.Articles[0].Status != domain.StatusVerified {
		t.Fatalf("status should be seeded from the server, got %s", snap.Articles[0].Status)
	}
	if got := snap.Statistics[domain.SourceSFC].ToProcess; got != 3 {
		t.Fatalf("unexpected statistics: %+v", snap.Statistics)
	}

	got := queries()
	if len(got) != 1 || got[0] != "end_date=2024-01-07&start_date=2024-01-01" {
		t.Fatalf("unexpected listing query: %v", got)
	}
}

func TestLoadWithAppliesFilters(t *testing.T) {
	t.Parallel()

	srv, queries := newTestServer(t)
	application := newTestApp(t, srv.URL)

	dr, err := domain.ParseDateRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	filters := domain.Filters{DateRange: dr, Source: domain.FilterHKMA, Status: domain.StatusFilterFor(domain.StatusPending)}
	if err := application.LoadWith(context.Background(), filters); err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}

	got := queries()
	want := "end_date=2024-01-31&sources=HKMA&start_date=2024-01-01&status=PENDING"
	if len(got) != 1 || got[0] != want {
		t.Fatalf("unexpected listing query: %v", got)
	}
}

func TestInvalidDefaultPeriodFallsBack(t *testing.T) {
	t.Parallel()

	clk := clock.Fake(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	filters := initialFilters(config.DashboardConfig{DefaultPeriod: "forever"}, clk, logging.Discard())

	if filters.DateRange.String() != "2024-03-04..2024-03-10" {
		t.Fatalf("unexpected fallback range: %s", filters.DateRange)
	}
	if filters.Source != domain.AllSources || filters.Status != domain.AllStatuses {
		t.Fatalf("unexpected default filters: %+v", filters)
	}
}
