package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"NewsDesk/internal/app"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/state"
)

func addStatus(topLevel *cobra.Command, application *app.Application) {
	var opts filterOptions

	cmd := &cobra.Command{
		Use:   "status <id> <verified|discarded>",
		Short: "Move an article to a new review status",
		Long: `Status changes the review status of one article. Pending articles may be
verified or discarded; verified and discarded articles can swap but never
return to pending. The article must be part of the listing selected by the
filter flags.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, next := args[0], domain.Status(args[1])
			if !next.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}

			if err := load(cmd.Context(), application, &opts); err != nil {
				return err
			}

			err := application.Status.Update(cmd.Context(), id, next)
			out := cmd.OutOrStdout()
			if errors.Is(err, state.ErrTransitionNotAllowed) {
				current := application.Store.Status(id)
				return fmt.Errorf("cannot move article %s from %s to %s (allowed: %v)",
					id, current, next, domain.AllowedTransitions(current))
			}
			renderNotifications(out, application.Queue.List())
			return err
		},
	}

	opts.addFlags(cmd)
	topLevel.AddCommand(cmd)
}
