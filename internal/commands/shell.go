package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"NewsDesk/internal/app"
	"NewsDesk/internal/apperror"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/state"
	"NewsDesk/internal/usecase"
)

const shellHelp = `Commands:
  list                         show the current articles
  show <id>                    show one article with its draft and allowed moves
  refresh                      reload in the background treatment
  retry                        reload with the full treatment
  source <filter>              all-sources, sfc, hkma, sec, hkex
  state <filter>               all-statuses, pending, verified, discarded
  range <from> <to>            set both dates (YYYY-MM-DD)
  from <date> | to <date>      move one bound
  period <preset>              last-7-days, last-30-days, last-90-days
  select <id>                  toggle report membership
  clear                        clear the selection
  menu <id>                    toggle the status menu
  mark <id> <status>           change the review status
  edit <id>                    enter edit mode, or save when editing
  set <id> title|summary <txt> change a draft field
  cancel <id>                  abandon a draft
  report                       generate the report for the selection
  copy                         copy the last report
  stats                        show per-source counters
  notes                        show active notifications
  dismiss [id]                 dismiss a notification, or the error banner
  help                         show this help
  quit                         leave the shell`

func addShell(topLevel *cobra.Command, application *app.Application) {
	var opts filterOptions

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive dashboard session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			filters, err := opts.apply(application.Store.Filters(), time.Now())
			if err != nil {
				return err
			}
			application.Store.SetFilters(filters)

			sh := newShell(application, cmd.InOrStdin(), cmd.OutOrStdout())
			// Load failures are rendered from the snapshot banner.
			_ = application.Start(ctx)
			if err := application.StartAutoRefresh(ctx); err != nil {
				return err
			}
			defer application.Close(context.Background())

			renderArticles(sh.out, application.Store.Snapshot())
			return sh.run(ctx)
		},
	}

	opts.addFlags(cmd)
	topLevel.AddCommand(cmd)
}

type shell struct {
	app  *app.Application
	in   io.Reader
	out  io.Writer
	seen map[string]bool
	last *usecase.Report
}

func newShell(application *app.Application, in io.Reader, out io.Writer) *shell {
	return &shell{app: application, in: in, out: out, seen: map[string]bool{}}
}

func (s *shell) run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for {
		_, _ = fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(s.out)
			return scanner.Err()
		}

		quit := s.exec(ctx, scanner.Text())
		s.flushNotifications()
		if quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session should end.
// Failures are printed; none of them end the session.
func (s *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := fields[0], fields[1:]

	var err error
	switch name {
	case "quit", "exit":
		return true
	case "help":
		_, _ = fmt.Fprintln(s.out, shellHelp)
	case "list", "ls":
		renderArticles(s.out, s.app.Store.Snapshot())
	case "show":
		err = s.show(args)
	case "refresh":
		err = s.reload(s.app.Fetcher.Refresh(ctx))
	case "retry":
		err = s.reload(s.app.Fetcher.Refetch(ctx))
	case "source":
		err = s.withArg(args, func(v string) error {
			f, err := domain.ParseSourceFilter(v)
			if err != nil {
				return err
			}
			return s.reload(s.app.Fetcher.SetSourceFilter(ctx, f))
		})
	case "state":
		err = s.withArg(args, func(v string) error {
			f, err := domain.ParseStatusFilter(v)
			if err != nil {
				return err
			}
			return s.reload(s.app.Fetcher.SetStatusFilter(ctx, f))
		})
	case "range":
		err = s.setRange(ctx, args)
	case "from", "to", "period":
		err = s.withArg(args, func(v string) error {
			opts := filterOptions{}
			switch name {
			case "from":
				opts.from = v
			case "to":
				opts.to = v
			default:
				opts.period = v
			}
			return s.applyDates(ctx, opts)
		})
	case "select":
		err = s.withArg(args, func(id string) error {
			on, err := s.app.Editor.Toggle(id)
			if err != nil {
				return err
			}
			if on {
				_, _ = faint.Fprintf(s.out, "%s selected\n", id)
			} else {
				_, _ = faint.Fprintf(s.out, "%s deselected\n", id)
			}
			return nil
		})
	case "clear":
		s.app.Editor.ClearSelection()
	case "menu":
		err = s.withArg(args, func(id string) error {
			open, err := s.app.Status.ToggleMenu(id)
			if err != nil {
				return err
			}
			if open {
				return s.show([]string{id})
			}
			return nil
		})
	case "mark":
		err = s.mark(ctx, args)
	case "edit":
		err = s.withArg(args, func(id string) error {
			editing, err := s.app.Editor.ToggleEdit(ctx, id)
			if err == nil && editing {
				return s.show([]string{id})
			}
			return err
		})
	case "set":
		err = s.set(line)
	case "cancel":
		err = s.withArg(args, s.app.Editor.Cancel)
	case "report":
		err = s.report(ctx)
	case "copy":
		if s.last == nil {
			err = errors.New("no report generated yet")
			break
		}
		renderCopyStatus(s.out, s.app.Reports.Copy(*s.last))
	case "stats":
		if err = s.app.Stats.Load(ctx); err == nil {
			renderStatistics(s.out, s.app.Store.Snapshot().Statistics)
		}
	case "notes":
		renderNotifications(s.out, s.app.Queue.List())
	case "dismiss":
		if len(args) == 0 {
			s.app.Store.DismissError()
			break
		}
		if !s.app.Queue.Dismiss(args[0]) {
			err = fmt.Errorf("no notification %s", args[0])
		}
	default:
		err = fmt.Errorf("unknown command %q, type help", name)
	}

	if err != nil {
		s.printErr(err)
	}
	return false
}

func (s *shell) withArg(args []string, fn func(string) error) error {
	if len(args) != 1 {
		return errors.New("expected one argument")
	}
	return fn(args[0])
}

// reload renders the listing after a fetch. Load failures show up in the
// snapshot banner, so only other errors are passed on.
func (s *shell) reload(err error) error {
	renderArticles(s.out, s.app.Store.Snapshot())
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return nil
	}
	return err
}

func (s *shell) setRange(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("expected <from> <to>")
	}
	dr, err := domain.ParseDateRange(args[0], args[1])
	if err != nil {
		return err
	}
	return s.reload(s.app.Fetcher.SetDateRange(ctx, dr))
}

func (s *shell) applyDates(ctx context.Context, opts filterOptions) error {
	f, err := opts.apply(s.app.Store.Filters(), time.Now())
	if err != nil {
		return err
	}
	return s.reload(s.app.Fetcher.SetDateRange(ctx, f.DateRange))
}

func (s *shell) show(args []string) error {
	if len(args) != 1 {
		return errors.New("expected one argument")
	}
	view, ok := s.app.Store.Snapshot().Article(args[0])
	if !ok {
		return fmt.Errorf("article %s is not in the current listing", args[0])
	}
	renderArticle(s.out, view)
	return nil
}

func (s *shell) mark(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("expected <id> <status>")
	}
	next := domain.Status(args[1])
	if !next.Valid() {
		return fmt.Errorf("unknown status %q", args[1])
	}
	if !s.app.Status.CanUpdate(args[0], next) {
		return fmt.Errorf("article %s cannot move to %s now", args[0], next)
	}
	err := s.app.Status.Update(ctx, args[0], next)
	switch {
	case errors.Is(err, state.ErrTransitionNotAllowed),
		errors.Is(err, state.ErrUpdateInFlight),
		errors.Is(err, state.ErrUnknownArticle):
		return err
	}
	// Gateway failures are already queued as notifications.
	return nil
}

// set takes the value verbatim: everything after the single separator that
// follows the field name, spacing included.
func (s *shell) set(line string) error {
	args := strings.Fields(line)
	if len(args) < 3 {
		return errors.New("expected <id> title|summary <text>")
	}
	var field domain.Field
	switch args[2] {
	case "title":
		field = domain.FieldTitle
	case "summary":
		field = domain.FieldAISummary
	default:
		return fmt.Errorf("unknown field %q", args[2])
	}
	return s.app.Editor.SetField(args[1], field, afterFields(line, 3))
}

// afterFields returns line with its first n whitespace-separated tokens and
// one separator removed.
func afterFields(line string, n int) string {
	rest := line
	for i := 0; i < n; i++ {
		rest = strings.TrimLeft(rest, " \t")
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			return ""
		}
		rest = rest[end:]
	}
	return rest[1:]
}

func (s *shell) report(ctx context.Context) error {
	if !s.app.Store.Snapshot().CanGenerateReport() {
		return usecase.ErrEmptySelection
	}
	report, err := s.app.Reports.Generate(ctx)
	if err != nil {
		return err
	}
	s.last = &report
	renderReport(s.out, report)
	return nil
}

// flushNotifications prints notifications not shown yet. Expired ids are
// forgotten.
func (s *shell) flushNotifications() {
	var fresh []domain.Notification
	seen := map[string]bool{}
	for _, n := range s.app.Queue.List() {
		if !s.seen[n.ID] {
			fresh = append(fresh, n)
		}
		seen[n.ID] = true
	}
	s.seen = seen
	renderNotifications(s.out, fresh)
}

func (s *shell) printErr(err error) {
	renderError(s.out, err.Error(), "")
}
