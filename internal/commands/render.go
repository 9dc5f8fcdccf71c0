package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"NewsDesk/internal/domain"
	"NewsDesk/internal/state"
	"NewsDesk/internal/usecase"
)

const maxTitleWidth = 60

var (
	bold    = color.New(color.Bold)
	heading = color.New(color.Bold, color.Underline)
	faint   = color.New(color.Faint)

	statusColors = map[domain.Status]*color.Color{
		domain.StatusPending:   color.New(color.FgYellow),
		domain.StatusVerified:  color.New(color.FgGreen),
		domain.StatusDiscarded: color.New(color.FgRed, color.Faint),
	}

	noticeColors = map[domain.NotificationType]*color.Color{
		domain.NotificationSuccess: color.New(color.FgGreen),
		domain.NotificationError:   color.New(color.FgRed, color.Bold),
	}
)

func renderArticles(w io.Writer, snap state.Snapshot) {
	_, _ = heading.Fprintf(w, "Articles %s", snap.Filters.DateRange)
	_, _ = faint.Fprintf(w, " · %s · %s - %d\n", snap.Filters.Source, snap.Filters.Status, len(snap.Articles))

	switch {
	case snap.Loading:
		_, _ = faint.Fprintln(w, "Loading…")
	case snap.FilterLoading:
		_, _ = faint.Fprintln(w, "Filtering…")
	}
	if snap.Err != nil {
		renderError(w, snap.Err.Message, snap.Err.Details)
	}

	if len(snap.Articles) == 0 {
		_, _ = faint.Fprintln(w, " none")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxTitleWidth
	tbl.AddRow("", bold.Sprint("ID"), bold.Sprint("SOURCE"), bold.Sprint("DATE"), bold.Sprint("TIME"),
		bold.Sprint("STATUS"), bold.Sprint("UPDATED"), bold.Sprint("TITLE"))

	for _, a := range snap.Articles {
		tbl.AddRow(selectionMark(a), a.ID, a.Source, a.Date(), a.Time(), statusCell(a), updatedCell(a), titleCell(a))
	}

	_, _ = fmt.Fprintln(w, tbl)
	if n := len(snap.Selected); n > 0 {
		_, _ = faint.Fprintf(w, "%d selected for the report\n", n)
	}
}

func renderArticle(w io.Writer, a state.ArticleView) {
	_, _ = bold.Fprintln(w, a.Title)
	_, _ = faint.Fprintf(w, "%s · %s %s · %s\n", a.Source, a.Date(), a.Time(), statusCell(a))
	if a.ContentURL != "" {
		_, _ = faint.Fprintln(w, a.ContentURL)
	}
	_, _ = fmt.Fprintln(w, a.AISummary)

	if a.Editing {
		_, _ = faint.Fprintln(w, "draft:")
		_, _ = fmt.Fprintf(w, "  title:   %s\n", a.Draft.Title)
		_, _ = fmt.Fprintf(w, "  summary: %s\n", a.Draft.AISummary)
	}
	if len(a.AllowedStatuses) > 0 {
		names := make([]string, 0, len(a.AllowedStatuses))
		for _, s := range a.AllowedStatuses {
			names = append(names, string(s))
		}
		_, _ = faint.Fprintf(w, "can move to: %s\n", strings.Join(names, ", "))
	}
}

func selectionMark(a state.ArticleView) string {
	if a.Selected {
		return "*"
	}
	return ""
}

func statusCell(a state.ArticleView) string {
	c, ok := statusColors[a.Status]
	if !ok {
		c = color.New()
	}
	text := c.Sprint(a.Status)
	if a.StatusLoading {
		text += faint.Sprint(" (updating)")
	}
	return text
}

func updatedCell(a state.ArticleView) string {
	if a.LastUpdated.IsZero() {
		return "-"
	}
	return humanize.Time(a.LastUpdated)
}

func titleCell(a state.ArticleView) string {
	title := a.Title
	switch {
	case a.ContentLoading:
		title = "[saving] " + a.Draft.Title
	case a.Editing:
		title = "[editing] " + a.Draft.Title
	case a.LocallyEdited:
		title += " (edited)"
	}
	return title
}

func renderStatistics(w io.Writer, stats domain.Statistics) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("SOURCE"), bold.Sprint("TO PROCESS"), bold.Sprint("PROCESSED"))
	for _, src := range domain.Sources() {
		s := stats[src]
		tbl.AddRow(src, humanize.Comma(int64(s.ToProcess)), humanize.Comma(int64(s.Processed)))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(w, tbl)
}

func renderNotifications(w io.Writer, notes []domain.Notification) {
	for _, n := range notes {
		c, ok := noticeColors[n.Type]
		if !ok {
			c = color.New()
		}
		_, _ = c.Fprintln(w, n.Message)
	}
}

func renderError(w io.Writer, message, details string) {
	_, _ = noticeColors[domain.NotificationError].Fprintln(w, message)
	if details != "" && details != message {
		_, _ = faint.Fprintln(w, "  "+details)
	}
}

func renderReport(w io.Writer, report usecase.Report) {
	_, _ = heading.Fprintf(w, "Report")
	_, _ = faint.Fprintf(w, " - %d articles\n", len(report.ArticleIDs))
	_, _ = fmt.Fprintln(w, report.Preview.Text)

	if len(report.Preview.Links) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "Links")
	for _, l := range report.Preview.Links {
		_, _ = fmt.Fprintf(w, "  %s\n", l.Title)
		_, _ = faint.Fprintf(w, "  %s\n", l.URL)
	}
}

func renderCopyStatus(w io.Writer, status usecase.CopyStatus) {
	renderNotifications(w, []domain.Notification{{Message: status.Message, Type: status.Type}})
}
