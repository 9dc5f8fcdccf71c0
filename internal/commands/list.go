package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"NewsDesk/internal/app"
)

func addList(topLevel *cobra.Command, application *app.Application) {
	var opts filterOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles for a date range, source and status",
		Long: `List shows the articles matching the filters, newest first.

Examples:
  newsdesk list
  newsdesk list --period last-30-days --source sfc
  newsdesk list --from 2024-01-01 --to 2024-01-07 --status pending`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := load(cmd.Context(), application, &opts); err != nil {
				return err
			}
			renderArticles(cmd.OutOrStdout(), application.Store.Snapshot())
			return nil
		},
	}

	opts.addFlags(cmd)
	topLevel.AddCommand(cmd)
}

// load resolves the flags against the current filters and fetches.
func load(ctx context.Context, application *app.Application, opts *filterOptions) error {
	filters, err := opts.apply(application.Store.Filters(), time.Now())
	if err != nil {
		return err
	}
	return application.LoadWith(ctx, filters)
}
