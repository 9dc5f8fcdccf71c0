package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"NewsDesk/internal/apperror"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/state"
)

func TestEditSaveSuccess(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	art := newsItem("3", domain.SourceHKMA, domain.StatusPending)
	art.Title = "T0"
	f.load(t, art)
	f.gw.updateContent = func(_ context.Context, id string, _ domain.ContentPatch) (domain.ContentUpdateResult, error) {
		return domain.ContentUpdateResult{ID: id, Message: "News content updated successfully"}, nil
	}

	ed := NewEditor(f.deps)
	ctx := context.Background()

	editing, err := ed.ToggleEdit(ctx, "3")
	require.NoError(t, err)
	require.True(t, editing)
	require.NoError(t, ed.SetField("3", domain.FieldTitle, "T1"))

	editing, err = ed.ToggleEdit(ctx, "3")
	require.NoError(t, err)
	require.False(t, editing)

	require.Len(t, f.gw.patches, 1)
	require.Equal(t, "T1", *f.gw.patches[0].Title)
	require.Nil(t, f.gw.patches[0].AISummary, "unchanged fields are not sent")

	view, _ := f.store.Snapshot().Article("3")
	require.Equal(t, "T1", view.Title)
	require.False(t, view.Editing)
	require.False(t, view.ContentLoading)

	notes := f.queue.List()
	require.Len(t, notes, 1)
	require.Equal(t, "News content updated successfully", notes[0].Message)
}

func TestEditSaveFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	art := newsItem("3", domain.SourceHKMA, domain.StatusPending)
	art.Title = "T0"
	f.load(t, art)
	f.gw.updateContent = func(context.Context, string, domain.ContentPatch) (domain.ContentUpdateResult, error) {
		return domain.ContentUpdateResult{}, apperror.FromResponse(500, "database unavailable")
	}

	ed := NewEditor(f.deps)
	ctx := context.Background()

	_, err := ed.BeginEdit("3")
	require.NoError(t, err)
	require.NoError(t, ed.SetField("3", domain.FieldTitle, "T1"))

	editing, err := ed.ToggleEdit(ctx, "3")
	require.Error(t, err)
	require.True(t, editing)

	view, _ := f.store.Snapshot().Article("3")
	require.True(t, view.Editing)
	require.Equal(t, "T1", view.Draft.Title)
	require.Equal(t, "T0", view.Title)
	require.False(t, view.ContentLoading)

	notes := f.queue.List()
	require.Len(t, notes, 1)
	require.Equal(t, domain.NotificationError, notes[0].Type)
	require.Equal(t, "database unavailable", notes[0].Message)

	require.NoError(t, ed.Cancel("3"))
	view, _ = f.store.Snapshot().Article("3")
	require.False(t, view.Editing)
}

func TestNoOpSaveSkipsGateway(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.load(t, newsItem("3", domain.SourceHKMA, domain.StatusPending))
	ed := NewEditor(f.deps)

	_, err := ed.BeginEdit("3")
	require.NoError(t, err)

	saved, err := ed.Save(context.Background(), "3")
	require.NoError(t, err)
	require.False(t, saved)
	require.Empty(t, f.gw.patches)
	require.Zero(t, f.queue.Len())

	_, editing := f.store.Draft("3")
	require.False(t, editing)
}

func TestDoubleSaveIsGuarded(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.load(t, newsItem("3", domain.SourceHKMA, domain.StatusPending))

	entered := make(chan struct{})
	release := make(chan struct{})
	f.gw.updateContent = func(_ context.Context, id string, _ domain.ContentPatch) (domain.ContentUpdateResult, error) {
		close(entered)
		<-release
		return domain.ContentUpdateResult{ID: id, Message: "saved"}, nil
	}

	ed := NewEditor(f.deps)
	ctx := context.Background()
	_, err := ed.BeginEdit("3")
	require.NoError(t, err)
	require.NoError(t, ed.SetField("3", domain.FieldAISummary, "shorter"))

	first := make(chan error, 1)
	go func() {
		_, err := ed.Save(ctx, "3")
		first <- err
	}()
	<-entered

	_, err = ed.Save(ctx, "3")
	require.ErrorIs(t, err, state.ErrUpdateInFlight)
	require.ErrorIs(t, ed.Cancel("3"), state.ErrUpdateInFlight)

	close(release)
	require.NoError(t, <-first)
	require.Len(t, f.gw.patches, 1)
}

func TestSelectionToggle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.load(t, newsItem("1", domain.SourceSFC, domain.StatusPending), newsItem("2", domain.SourceSFC, domain.StatusPending))
	ed := NewEditor(f.deps)

	on, err := ed.Toggle("2")
	require.NoError(t, err)
	require.True(t, on)
	_, err = ed.Toggle("1")
	require.NoError(t, err)
	require.Equal(t, []string{"2", "1"}, ed.Selected())

	on, err = ed.Toggle("2")
	require.NoError(t, err)
	require.False(t, on)
	require.Equal(t, []string{"1"}, ed.Selected())

	_, err = ed.Toggle("99")
	require.ErrorIs(t, err, state.ErrUnknownArticle)

	ed.ClearSelection()
	require.Empty(t, ed.Selected())
}

func TestSelectionPrunedAfterFilterChange(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.load(t, newsItem("1", domain.SourceSFC, domain.StatusPending), newsItem("2", domain.SourceHKMA, domain.StatusPending))
	ed := NewEditor(f.deps)
	_, _ = ed.Toggle("1")
	_, _ = ed.Toggle("2")

	f.gw.grouped = func(context.Context, domain.NewsQuery) ([]domain.Article, error) {
		return []domain.Article{newsItem("2", domain.SourceHKMA, domain.StatusPending)}, nil
	}
	require.NoError(t, NewFetchCoordinator(f.deps).SetSourceFilter(context.Background(), domain.FilterHKMA))

	require.Equal(t, []string{"2"}, ed.Selected())
}
