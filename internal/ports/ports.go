package ports

import (
	"context"
	"time"

	"NewsDesk/internal/domain"
)

// NewsGateway is the remote compliance-news API. Implementations return
// *apperror.APIError for transport and HTTP failures.
type NewsGateway interface {
	Statistics(ctx context.Context) ([]domain.StatisticsRecord, error)
	GroupedNews(ctx context.Context, query domain.NewsQuery) ([]domain.Article, error)
	UpdateStatus(ctx context.Context, articleID string, status domain.Status) (domain.StatusUpdateResult, error)
	UpdateContent(ctx context.Context, articleID string, patch domain.ContentPatch) (domain.ContentUpdateResult, error)
	EmailHTML(ctx context.Context, articleIDs []int64) (string, error)
}

// Notifier surfaces transient confirmations and failures to the user.
type Notifier interface {
	Success(message string) domain.Notification
	Error(message string) domain.Notification
}

// Clipboard receives generated reports. WriteRich may be unsupported on the
// host, in which case callers fall back to WriteText.
type Clipboard interface {
	WriteRich(html, text string) error
	WriteText(text string) error
}

// Scheduler drives periodic background jobs.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

// ReportRenderer turns server-generated email HTML into a safe preview.
type ReportRenderer interface {
	Render(html string) (domain.ReportPreview, error)
}
