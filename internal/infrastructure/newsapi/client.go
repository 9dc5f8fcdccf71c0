package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/config"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/ports"
)

const (
	statisticsPath    = "/api/news/statistics"
	groupedNewsPath   = "/api/news/date-range/grouped"
	updateStatusPath  = "/api/news/update-status/"
	updateContentPath = "/api/news/update-content/"
	emailByIDsPath    = "/api/news/html-email-by-ids"

	maxErrorBody = 64 << 10
)

// Client talks to the compliance-news REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ ports.NewsGateway = (*Client)(nil)

// NewClient creates a reusable HTTP client for the configured host.
func NewClient(cfg config.APIConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Statistics returns the per-source, per-status record counts.
func (c *Client) Statistics(ctx context.Context) ([]domain.StatisticsRecord, error) {
	var resp []statisticsRecord
	if err := c.do(ctx, "fetch statistics", http.MethodGet, statisticsPath, nil, &resp); err != nil {
		return nil, err
	}

	records := make([]domain.StatisticsRecord, 0, len(resp))
	for _, rec := range resp {
		records = append(records, domain.StatisticsRecord{
			Source:      rec.Source,
			Status:      rec.Status,
			RecordCount: rec.RecordCount,
		})
	}
	return records, nil
}

// GroupedNews lists articles in the date range, reshaped for display.
func (c *Client) GroupedNews(ctx context.Context, query domain.NewsQuery) ([]domain.Article, error) {
	var resp groupedNewsResponse
	if err := c.do(ctx, "fetch grouped news", http.MethodGet, buildGroupedPath(query), nil, &resp); err != nil {
		return nil, err
	}
	return toArticles(resp.GroupedNews), nil
}

// UpdateStatus moves an article to a new review status.
func (c *Client) UpdateStatus(ctx context.Context, articleID string, status domain.Status) (domain.StatusUpdateResult, error) {
	payload := statusUpdateRequest{Status: status.APIValue()}

	var resp statusUpdateResponse
	if err := c.do(ctx, "update status", http.MethodPut, updateStatusPath+url.PathEscape(articleID), payload, &resp); err != nil {
		return domain.StatusUpdateResult{}, err
	}

	return domain.StatusUpdateResult{
		ID:      resp.ID.String(),
		Status:  domain.StatusFromAPI(resp.Status),
		Message: resp.Message,
	}, nil
}

// UpdateContent sends only the fields present in patch.
func (c *Client) UpdateContent(ctx context.Context, articleID string, patch domain.ContentPatch) (domain.ContentUpdateResult, error) {
	payload := contentUpdateRequest{Title: patch.Title, LLMSummary: patch.AISummary}

	var resp contentUpdateResponse
	if err := c.do(ctx, "update content", http.MethodPut, updateContentPath+url.PathEscape(articleID), payload, &resp); err != nil {
		return domain.ContentUpdateResult{}, err
	}

	result := domain.ContentUpdateResult{ID: resp.ID.String(), Message: resp.Message}
	if resp.Title != nil {
		result.Title = *resp.Title
	}
	if resp.LLMSummary != nil {
		result.AISummary = *resp.LLMSummary
	}
	return result, nil
}

// EmailHTML renders the report template for the given articles.
func (c *Client) EmailHTML(ctx context.Context, articleIDs []int64) (string, error) {
	var html string
	if err := c.do(ctx, "generate email", http.MethodPost, emailByIDsPath, articleIDs, &html); err != nil {
		return "", err
	}
	return html, nil
}

func buildGroupedPath(query domain.NewsQuery) string {
	values := url.Values{}
	values.Set("start_date", query.StartDate)
	values.Set("end_date", query.EndDate)
	if query.Sources != "" {
		values.Set("sources", query.Sources)
	}
	if query.Status != "" {
		values.Set("status", query.Status)
	}
	return groupedNewsPath + "?" + values.Encode()
}

// do performs one JSON round trip. v may point at a string to receive a
// non-JSON body verbatim.
func (c *Client) do(ctx context.Context, operation, method, path string, payload any, v any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.FromTransport(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		apiErr := apperror.FromResponse(resp.StatusCode, parseDetail(raw))
		c.debug("api error", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if v == nil {
		if err := resp.Body.Close(); err != nil {
			return fmt.Errorf("close response body: %w", err)
		}
		return nil
	}

	if err := decodeBody(resp, v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}

func decodeBody(resp *http.Response, v any) error {
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return json.NewDecoder(resp.Body).Decode(v)
	}

	text, ok := v.(*string)
	if !ok {
		return fmt.Errorf("unexpected content type %q", mediaType)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	*text = string(raw)
	return nil
}

// parseDetail extracts the `detail` field. Validation responses carry a list
// of {msg} objects instead of a string.
func parseDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
