package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NewsDesk/internal/domain"
	"NewsDesk/internal/ports"
	"NewsDesk/internal/state"
)

// Editor manages the report selection and per-article edit drafts.
type Editor struct {
	gateway  ports.NewsGateway
	store    *state.Store
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewEditor constructs the selection and edit use case.
func NewEditor(deps Deps) *Editor {
	return &Editor{
		gateway:  deps.Gateway,
		store:    deps.Store,
		notifier: deps.Notifier,
		logger:   deps.logger(),
	}
}

// Toggle flips report membership and returns the new membership.
func (e *Editor) Toggle(articleID string) (bool, error) {
	selected, err := e.store.ToggleSelection(articleID)
	if err != nil {
		return false, fmt.Errorf("toggle article %s: %w", articleID, err)
	}
	return selected, nil
}

// Selected returns the selected ids in pick order.
func (e *Editor) Selected() []string {
	return e.store.Selection()
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	e.store.ClearSelection()
}

// BeginEdit enters edit mode for one article.
func (e *Editor) BeginEdit(articleID string) (domain.EditableArticle, error) {
	draft, err := e.store.BeginEdit(articleID)
	if err != nil {
		return domain.EditableArticle{}, fmt.Errorf("edit article %s: %w", articleID, err)
	}
	return draft, nil
}

// SetField updates one draft field.
func (e *Editor) SetField(articleID string, field domain.Field, value string) error {
	if err := e.store.UpdateDraft(articleID, field, value); err != nil {
		return fmt.Errorf("edit article %s: %w", articleID, err)
	}
	return nil
}

// Save sends the changed fields and leaves edit mode on success. It reports
// false with a nil error when nothing changed and no request was made. On
// failure the draft is kept so the user can retry or cancel.
func (e *Editor) Save(ctx context.Context, articleID string) (bool, error) {
	patch, err := e.store.BeginContentUpdate(articleID)
	if err != nil {
		return false, fmt.Errorf("save article %s: %w", articleID, err)
	}
	if patch.Empty() {
		e.logger.Debug("nothing to save", "article", articleID)
		return false, nil
	}

	res, err := e.gateway.UpdateContent(ctx, articleID, patch)
	if err != nil {
		e.store.FailContentUpdate(articleID)
		e.notifier.Error(err.Error())
		e.logger.Warn("content update failed", "article", articleID, "error", err)
		return false, fmt.Errorf("save article %s: %w", articleID, err)
	}

	e.store.CompleteContentUpdate(articleID, patch)

	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Article %s updated", articleID)
	}
	e.notifier.Success(msg)
	e.logger.Info("content updated",
		"article", articleID,
		"title", patch.Title != nil,
		"summary", patch.AISummary != nil,
	)

	return true, nil
}

// Cancel abandons the draft.
func (e *Editor) Cancel(articleID string) error {
	if err := e.store.CancelEdit(articleID); err != nil {
		return fmt.Errorf("cancel edit of article %s: %w", articleID, err)
	}
	return nil
}

// ToggleEdit enters edit mode, or saves when already editing. It returns
// whether the article is still in edit mode afterwards.
func (e *Editor) ToggleEdit(ctx context.Context, articleID string) (bool, error) {
	if _, editing := e.store.Draft(articleID); !editing {
		if _, err := e.BeginEdit(articleID); err != nil {
			return false, err
		}
		return true, nil
	}

	if _, err := e.Save(ctx, articleID); err != nil {
		_, editing := e.store.Draft(articleID)
		return editing, err
	}
	return false, nil
}
