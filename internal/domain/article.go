package domain

import (
	"strings"
	"time"
)

// NoSummary is displayed when the server has not produced an AI summary yet.
const NoSummary = "No summary available"

// Source identifies the regulator feed an article was ingested from.
type Source string

const (
	SourceSFC  Source = "SFC"
	SourceHKMA Source = "HKMA"
	SourceSEC  Source = "SEC"
	SourceHKEX Source = "HKEX"
)

// Sources lists every known feed in display order.
func Sources() []Source {
	return []Source{SourceSFC, SourceHKMA, SourceSEC, SourceHKEX}
}

// ParseSource accepts either casing of a feed name.
func ParseSource(value string) (Source, bool) {
	s := Source(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range Sources() {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Article is a single regulatory news item in the shape the dashboard shows.
// ID is server-assigned and stable across refetches.
type Article struct {
	ID           string
	Source       Source
	PublishedAt  time.Time
	Title        string
	AISummary    string
	Content      string
	ContentURL   string
	CreationDate time.Time
	CreationUser string
	ServerStatus Status
}

// Date renders the publication calendar day (YYYY-MM-DD).
func (a Article) Date() string {
	return a.PublishedAt.UTC().Format(time.DateOnly)
}

// Time renders the publication clock time on a 12 hour dial.
func (a Article) Time() string {
	return a.PublishedAt.UTC().Format("03:04 PM")
}

// Field names one of the two server-mutable text fields.
type Field string

const (
	FieldTitle     Field = "title"
	FieldAISummary Field = "aiSummary"
)

// EditableArticle is the draft copy held while an article is in edit mode.
type EditableArticle struct {
	Title     string
	AISummary string
}

// With returns a copy with one field replaced.
func (e EditableArticle) With(field Field, value string) EditableArticle {
	switch field {
	case FieldTitle:
		e.Title = value
	case FieldAISummary:
		e.AISummary = value
	}
	return e
}

// ContentPatch carries only the fields that changed; nil means untouched.
type ContentPatch struct {
	Title     *string
	AISummary *string
}

// Empty reports whether the patch changes nothing.
func (p ContentPatch) Empty() bool {
	return p.Title == nil && p.AISummary == nil
}

// Diff builds the patch turning current into draft.
func Diff(current, draft EditableArticle) ContentPatch {
	var patch ContentPatch
	if draft.Title != current.Title {
		title := draft.Title
		patch.Title = &title
	}
	if draft.AISummary != current.AISummary {
		summary := draft.AISummary
		patch.AISummary = &summary
	}
	return patch
}

// Merge layers other on top of p; fields set in other win.
func (p ContentPatch) Merge(other ContentPatch) ContentPatch {
	if other.Title != nil {
		p.Title = other.Title
	}
	if other.AISummary != nil {
		p.AISummary = other.AISummary
	}
	return p
}

// Apply overlays the patch on an article.
func (p ContentPatch) Apply(a Article) Article {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.AISummary != nil {
		a.AISummary = *p.AISummary
	}
	return a
}

// ContentUpdateResult is the server confirmation for a content edit.
type ContentUpdateResult struct {
	ID        string
	Message   string
	Title     string
	AISummary string
}

// StatusUpdateResult is the server confirmation for a status change.
type StatusUpdateResult struct {
	ID      string
	Status  Status
	Message string
}
