package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"NewsDesk/internal/app"
	"NewsDesk/internal/domain"
)

func addEdit(topLevel *cobra.Command, application *app.Application) {
	var (
		opts    filterOptions
		title   string
		summary string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or AI summary of an article",
		Long: `Edit sends only the fields that differ from what is shown. Nothing is sent
when the new values match the current ones.

Examples:
  newsdesk edit 42 --title "SFC reprimands broker"
  newsdesk edit 42 --summary "Shorter summary" --period last-30-days`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id := args[0]

			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("summary") {
				return errors.New("nothing to edit: pass --title and/or --summary")
			}

			if err := load(cmd.Context(), application, &opts); err != nil {
				return err
			}

			if _, err := application.Editor.BeginEdit(id); err != nil {
				return err
			}
			if flags.Changed("title") {
				if err := application.Editor.SetField(id, domain.FieldTitle, title); err != nil {
					return err
				}
			}
			if flags.Changed("summary") {
				if err := application.Editor.SetField(id, domain.FieldAISummary, summary); err != nil {
					return err
				}
			}

			saved, err := application.Editor.Save(cmd.Context(), id)
			out := cmd.OutOrStdout()
			renderNotifications(out, application.Queue.List())
			if err != nil {
				return err
			}
			if !saved {
				_, _ = faint.Fprintln(out, "No changes")
				return nil
			}

			if view, ok := application.Store.Snapshot().Article(id); ok {
				renderArticle(out, view)
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&summary, "summary", "", "new AI summary")
	topLevel.AddCommand(cmd)
}
