package newsapi

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"NewsDesk/internal/domain"
)

type statisticsRecord struct {
	Source      string `json:"source"`
	Status      string `json:"status"`
	RecordCount int    `json:"record_count"`
}

type groupedNewsResponse struct {
	GroupedNews map[string][]newsLight `json:"grouped_news"`
}

type newsLight struct {
	ID           apiID   `json:"id"`
	Source       string  `json:"source"`
	IssueDate    *string `json:"issue_date"`
	Title        string  `json:"title"`
	ContentURL   *string `json:"content_url"`
	LLMSummary   *string `json:"llm_summary"`
	CreationDate string  `json:"creation_date"`
	CreationUser string  `json:"creation_user"`
	Status       string  `json:"status"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type statusUpdateResponse struct {
	ID      apiID  `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type contentUpdateRequest struct {
	Title      *string `json:"title,omitempty"`
	LLMSummary *string `json:"llm_summary,omitempty"`
}

type contentUpdateResponse struct {
	ID         apiID   `json:"id"`
	Title      *string `json:"title"`
	LLMSummary *string `json:"llm_summary"`
	Message    string  `json:"message"`
}

// apiID accepts both numeric and string identifiers.
type apiID string

func (id *apiID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = apiID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = apiID(n.String())
	return nil
}

func (id apiID) String() string { return string(id) }

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// parseTimestamp reads server timestamps; zone-less values are UTC.
func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// toArticles flattens the grouped listing. The group key is the source;
// issue_date falls back to creation_date; newest first.
func toArticles(grouped map[string][]newsLight) []domain.Article {
	articles := make([]domain.Article, 0)

	groups := make([]string, 0, len(grouped))
	for source := range grouped {
		groups = append(groups, source)
	}
	sort.Strings(groups)

	for _, source := range groups {
		for _, news := range grouped[source] {
			created, _ := parseTimestamp(news.CreationDate)
			published := created
			if news.IssueDate != nil {
				if issued, ok := parseTimestamp(*news.IssueDate); ok {
					published = issued
				}
			}

			summary := domain.NoSummary
			if news.LLMSummary != nil && *news.LLMSummary != "" {
				summary = *news.LLMSummary
			}

			var contentURL string
			if news.ContentURL != nil {
				contentURL = *news.ContentURL
			}

			articles = append(articles, domain.Article{
				ID:           news.ID.String(),
				Source:       domain.Source(source),
				PublishedAt:  published,
				Title:        news.Title,
				AISummary:    summary,
				ContentURL:   contentURL,
				CreationDate: created,
				CreationUser: news.CreationUser,
				ServerStatus: domain.StatusFromAPI(news.Status),
			})
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].Date() != articles[j].Date() {
			return articles[i].Date() > articles[j].Date()
		}
		return articleNumber(articles[i].ID) > articleNumber(articles[j].ID)
	})

	return articles
}

func articleNumber(id string) int64 {
	n, _ := strconv.ParseInt(id, 10, 64)
	return n
}
