package state

import (
	"time"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/domain"
)

// ArticleView is one article as the presentation layer should render it.
type ArticleView struct {
	domain.Article

	Status          domain.Status
	AllowedStatuses []domain.Status
	StatusLoading   bool
	LastUpdated     time.Time
	DropdownOpen    bool

	Editing        bool
	Draft          domain.EditableArticle
	ContentLoading bool
	LocallyEdited  bool

	Selected bool
}

// Snapshot is an immutable copy of the store.
type Snapshot struct {
	Filters       domain.Filters
	Articles      []ArticleView
	Selected      []string
	Loading       bool
	FilterLoading bool
	Loaded        bool
	Err           *apperror.AppError
	Statistics    domain.Statistics
	StatisticsErr *apperror.AppError
}

// CanGenerateReport gates the report action on a non-empty selection.
func (s Snapshot) CanGenerateReport() bool {
	return len(s.Selected) > 0
}

// Article looks up one view by id.
func (s Snapshot) Article(id string) (ArticleView, bool) {
	for _, a := range s.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return ArticleView{}, false
}

// Snapshot copies the current state for rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selected := make(map[string]bool, len(s.selection))
	for _, id := range s.selection {
		selected[id] = true
	}

	views := make([]ArticleView, 0, len(s.articles))
	for _, art := range s.articles {
		view := ArticleView{
			Article:  art,
			Status:   domain.StatusPending,
			Selected: selected[art.ID],
		}
		if rec, ok := s.records[art.ID]; ok {
			view.Article = rec.override.Apply(art)
			if rec.status != "" {
				view.Status = rec.status
			}
			view.StatusLoading = rec.statusLoading
			view.LastUpdated = rec.lastUpdated
			view.DropdownOpen = rec.dropdownOpen
			view.ContentLoading = rec.contentLoading
			view.LocallyEdited = !rec.override.Empty()
			if rec.draft != nil {
				view.Editing = true
				view.Draft = *rec.draft
			}
		}
		if !view.StatusLoading {
			view.AllowedStatuses = domain.AllowedTransitions(view.Status)
		}
		views = append(views, view)
	}

	var stats domain.Statistics
	if s.statistics != nil {
		stats = make(domain.Statistics, len(s.statistics))
		for k, v := range s.statistics {
			stats[k] = v
		}
	}

	return Snapshot{
		Filters:       s.filters,
		Articles:      views,
		Selected:      append([]string(nil), s.selection...),
		Loading:       s.fetch.loading,
		FilterLoading: s.fetch.filterLoading,
		Loaded:        s.fetch.loaded,
		Err:           s.fetch.err,
		Statistics:    stats,
		StatisticsErr: s.statisticsErr,
	}
}
