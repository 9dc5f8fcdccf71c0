// Package state owns every piece of mutable dashboard state. Use cases mutate
// it through the methods below; the presentation layer only reads Snapshots.
package state

import (
	"errors"
	"sync"
	"time"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/domain"
)

var (
	// ErrTransitionNotAllowed is returned when the status table forbids a move.
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	// ErrUpdateInFlight is returned while the same article is already updating.
	ErrUpdateInFlight = errors.New("update already in progress")
	// ErrUnknownArticle is returned for ids outside the current result.
	ErrUnknownArticle = errors.New("article not in current result")
	// ErrNotEditing is returned for draft operations outside edit mode.
	ErrNotEditing = errors.New("article is not in edit mode")
)

// LoadMode picks the loading indicator a fetch drives.
type LoadMode int

const (
	// LoadFull is the full-page indicator used on first load and retries.
	LoadFull LoadMode = iota
	// LoadLight keeps the list visible behind an inline indicator.
	LoadLight
)

// record keeps all per-article state together. A non-nil draft means the
// article is in edit mode.
type record struct {
	status         domain.Status
	statusLoading  bool
	lastUpdated    time.Time
	dropdownOpen   bool
	draft          *domain.EditableArticle
	contentLoading bool
	override       domain.ContentPatch
}

func (r *record) busy() bool {
	return r.statusLoading || r.contentLoading
}

type fetchState struct {
	latest        uint64
	loading       bool
	filterLoading bool
	loaded        bool
	err           *apperror.AppError
}

// Store is the application-state container. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	filters   domain.Filters
	articles  []domain.Article
	present   map[string]struct{}
	records   map[string]*record
	selection []string
	fetch     fetchState

	statistics    domain.Statistics
	statisticsErr *apperror.AppError
}

// NewStore creates an empty store with the initial filters.
func NewStore(filters domain.Filters) *Store {
	return &Store{
		filters: filters,
		present: map[string]struct{}{},
		records: map[string]*record{},
	}
}

// Filters returns the active filter set.
func (s *Store) Filters() domain.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the filter set. Local content overrides belong to the
// previous result and are dropped when anything changed.
func (s *Store) SetFilters(f domain.Filters) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == s.filters {
		return false
	}
	s.filters = f
	for _, rec := range s.records {
		rec.override = domain.ContentPatch{}
	}
	return true
}

// BeginFetch issues a new sequence token and raises the indicator for mode.
// Only the most recently issued token may later complete.
func (s *Store) BeginFetch(mode LoadMode) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetch.latest++
	s.fetch.err = nil
	if mode == LoadFull {
		s.fetch.loading = true
	} else {
		s.fetch.filterLoading = true
	}
	return s.fetch.latest
}

// CompleteFetch applies a listing result. Superseded tokens are discarded
// and reported as false.
func (s *Store) CompleteFetch(seq uint64, articles []domain.Article) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetch.latest {
		return false
	}
	s.endFetchLocked()

	s.articles = append([]domain.Article(nil), articles...)
	s.present = make(map[string]struct{}, len(articles))
	for _, art := range articles {
		s.present[art.ID] = struct{}{}
		rec := s.recordLocked(art.ID)
		if !rec.statusLoading {
			rec.status = art.ServerStatus
		}
	}

	for id, rec := range s.records {
		if _, ok := s.present[id]; ok {
			continue
		}
		if rec.busy() {
			continue
		}
		delete(s.records, id)
	}

	kept := s.selection[:0]
	for _, id := range s.selection {
		if _, ok := s.present[id]; ok {
			kept = append(kept, id)
		}
	}
	s.selection = kept

	return true
}

// FailFetch records a listing failure. Previously loaded articles stay.
func (s *Store) FailFetch(seq uint64, err *apperror.AppError) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetch.latest {
		return false
	}
	s.endFetchLocked()
	s.fetch.err = err
	return true
}

// DismissError clears the listing error banner.
func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetch.err = nil
}

func (s *Store) endFetchLocked() {
	s.fetch.loading = false
	s.fetch.filterLoading = false
	s.fetch.loaded = true
}

// Status returns the article's review status, pending when unknown.
func (s *Store) Status(id string) domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.records[id]; ok && rec.status != "" {
		return rec.status
	}
	return domain.StatusPending
}

// CanTransition reports whether a status update to next could start now. It
// consults the same table and in-flight flag as BeginStatusUpdate.
func (s *Store) CanTransition(id string, next domain.Status) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.present[id]; !ok {
		return false
	}
	current := domain.StatusPending
	if rec, ok := s.records[id]; ok {
		if rec.statusLoading {
			return false
		}
		if rec.status != "" {
			current = rec.status
		}
	}
	return domain.IsTransitionAllowed(current, next)
}

// BeginStatusUpdate checks the transition table and the in-flight guard
// atomically, then marks the article as updating. It returns the status the
// article had before the call.
func (s *Store) BeginStatusUpdate(id string, next domain.Status) (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.present[id]; !ok {
		return domain.StatusPending, ErrUnknownArticle
	}

	rec := s.records[id]
	current := domain.StatusPending
	if rec != nil && rec.status != "" {
		current = rec.status
	}
	if rec != nil && rec.statusLoading {
		return current, ErrUpdateInFlight
	}
	if !domain.IsTransitionAllowed(current, next) {
		return current, ErrTransitionNotAllowed
	}

	rec = s.recordLocked(id)
	rec.status = current
	rec.statusLoading = true
	return current, nil
}

// CompleteStatusUpdate commits a confirmed status and closes the dropdown.
func (s *Store) CompleteStatusUpdate(id string, status domain.Status, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked(id)
	rec.statusLoading = false
	rec.lastUpdated = at
	rec.status = status
	rec.dropdownOpen = false
}

// FailStatusUpdate clears the in-flight flag and leaves the status alone.
func (s *Store) FailStatusUpdate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[id]; ok {
		rec.statusLoading = false
	}
}

// ToggleDropdown flips the status menu for one article.
func (s *Store) ToggleDropdown(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.present[id]; !ok {
		return false, ErrUnknownArticle
	}
	rec := s.recordLocked(id)
	rec.dropdownOpen = !rec.dropdownOpen
	return rec.dropdownOpen, nil
}

// CloseDropdowns closes every open status menu.
func (s *Store) CloseDropdowns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		rec.dropdownOpen = false
	}
}

// ToggleSelection flips report membership for an article in the result.
func (s *Store) ToggleSelection(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.present[id]; !ok {
		return false, ErrUnknownArticle
	}
	for i, sel := range s.selection {
		if sel == id {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			return false, nil
		}
	}
	s.selection = append(s.selection, id)
	return true, nil
}

// ClearSelection empties the report selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
}

// Selection returns the selected ids in the order they were picked.
func (s *Store) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

// BeginEdit enters edit mode, seeding the draft from what is displayed.
// Calling it again while editing returns the existing draft.
func (s *Store) BeginEdit(id string) (domain.EditableArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	art, ok := s.displayedLocked(id)
	if !ok {
		return domain.EditableArticle{}, ErrUnknownArticle
	}
	rec := s.recordLocked(id)
	if rec.draft == nil {
		rec.draft = &domain.EditableArticle{Title: art.Title, AISummary: art.AISummary}
	}
	return *rec.draft, nil
}

// UpdateDraft changes one draft field without touching displayed values.
// The draft is frozen while it is being saved.
func (s *Store) UpdateDraft(id string, field domain.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.draft == nil {
		return ErrNotEditing
	}
	if rec.contentLoading {
		return ErrUpdateInFlight
	}
	next := rec.draft.With(field, value)
	rec.draft = &next
	return nil
}

// Draft returns the draft for id when the article is in edit mode.
func (s *Store) Draft(id string) (domain.EditableArticle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.draft == nil {
		return domain.EditableArticle{}, false
	}
	return *rec.draft, true
}

// BeginContentUpdate diffs the draft against the displayed values. An empty
// patch means nothing changed: edit mode is left and no request is needed.
// Otherwise the article is marked as saving.
func (s *Store) BeginContentUpdate(id string) (domain.ContentPatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.draft == nil {
		return domain.ContentPatch{}, ErrNotEditing
	}
	if rec.contentLoading {
		return domain.ContentPatch{}, ErrUpdateInFlight
	}

	art, _ := s.displayedLocked(id)
	patch := domain.Diff(domain.EditableArticle{Title: art.Title, AISummary: art.AISummary}, *rec.draft)
	if patch.Empty() {
		rec.draft = nil
		return patch, nil
	}

	rec.contentLoading = true
	return patch, nil
}

// CompleteContentUpdate stores the saved fields as a local override and
// leaves edit mode.
func (s *Store) CompleteContentUpdate(id string, patch domain.ContentPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked(id)
	rec.contentLoading = false
	rec.override = rec.override.Merge(patch)
	rec.draft = nil
}

// FailContentUpdate clears the saving flag; the draft stays for a retry.
func (s *Store) FailContentUpdate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[id]; ok {
		rec.contentLoading = false
	}
}

// CancelEdit abandons the draft.
func (s *Store) CancelEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.draft == nil {
		return ErrNotEditing
	}
	if rec.contentLoading {
		return ErrUpdateInFlight
	}
	rec.draft = nil
	return nil
}

// SetStatistics stores the latest counters, or the failure to load them.
func (s *Store) SetStatistics(stats domain.Statistics, err *apperror.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.statisticsErr = err
		return
	}
	s.statistics = stats
	s.statisticsErr = nil
}

// Displayed returns the article as shown, overrides applied.
func (s *Store) Displayed(id string) (domain.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayedLocked(id)
}

func (s *Store) displayedLocked(id string) (domain.Article, bool) {
	if _, ok := s.present[id]; !ok {
		return domain.Article{}, false
	}
	for _, art := range s.articles {
		if art.ID != id {
			continue
		}
		if rec, ok := s.records[id]; ok {
			art = rec.override.Apply(art)
		}
		return art, true
	}
	return domain.Article{}, false
}

func (s *Store) recordLocked(id string) *record {
	rec, ok := s.records[id]
	if !ok {
		rec = &record{status: domain.StatusPending}
		s.records[id] = rec
	}
	return rec
}
