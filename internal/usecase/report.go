package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/clock"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/ports"
	"NewsDesk/internal/state"
)

var (
	// ErrEmptySelection blocks report generation without selected articles.
	ErrEmptySelection = errors.New("no articles selected")
	// ErrInvalidArticleID is returned for ids the email endpoint cannot take.
	ErrInvalidArticleID = errors.New("article id is not numeric")
)

const (
	generateReportContext = "Failed to generate report"

	copySucceeded = "Copied!"
	copyFailed    = "Copy failed"
)

// Report is a generated email together with the ids it covers.
type Report struct {
	ArticleIDs []int64
	Preview    domain.ReportPreview
}

// CopyStatus is the outcome shown next to the copy action.
type CopyStatus struct {
	Message string
	Type    domain.NotificationType
}

// Reporter turns the current selection into an email report.
type Reporter struct {
	gateway   ports.NewsGateway
	store     *state.Store
	renderer  ports.ReportRenderer
	clipboard ports.Clipboard
	clock     clock.Clock
	logger    *slog.Logger
}

// NewReporter constructs the report use case.
func NewReporter(deps Deps) *Reporter {
	return &Reporter{
		gateway:   deps.Gateway,
		store:     deps.Store,
		renderer:  deps.Renderer,
		clipboard: deps.Clipboard,
		clock:     deps.clock(),
		logger:    deps.logger(),
	}
}

// Generate requests the email for exactly the selected articles.
func (r *Reporter) Generate(ctx context.Context) (Report, error) {
	selected := r.store.Selection()
	if len(selected) == 0 {
		return Report{}, ErrEmptySelection
	}

	ids := make([]int64, 0, len(selected))
	for _, id := range selected {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return Report{}, fmt.Errorf("%w: %q", ErrInvalidArticleID, id)
		}
		ids = append(ids, n)
	}

	html, err := r.gateway.EmailHTML(ctx, ids)
	if err != nil {
		appErr := apperror.New(err, generateReportContext, r.clock.Now())
		logAppError(r.logger, "generate report", appErr, "articles", len(ids))
		return Report{}, appErr
	}

	preview, err := r.renderer.Render(html)
	if err != nil {
		return Report{}, fmt.Errorf("render report: %w", err)
	}

	r.logger.Debug("report generated", "articles", len(ids), "links", len(preview.Links))
	return Report{ArticleIDs: ids, Preview: preview}, nil
}

// Copy puts the report on the clipboard, as HTML when the host supports it
// and as plain text otherwise.
func (r *Reporter) Copy(report Report) CopyStatus {
	if r.clipboard == nil {
		return CopyStatus{Message: copyFailed, Type: domain.NotificationError}
	}

	err := r.clipboard.WriteRich(report.Preview.Raw, report.Preview.Text)
	if err == nil {
		return CopyStatus{Message: copySucceeded, Type: domain.NotificationSuccess}
	}
	r.logger.Debug("rich copy failed, falling back to plain text", "error", err)

	if err := r.clipboard.WriteText(report.Preview.Text); err != nil {
		r.logger.Warn("copy report failed", "error", err)
		return CopyStatus{Message: copyFailed, Type: domain.NotificationError}
	}
	return CopyStatus{Message: copySucceeded, Type: domain.NotificationSuccess}
}
