package commands

import (
	"github.com/spf13/cobra"

	"NewsDesk/internal/app"
)

func addStats(topLevel *cobra.Command, application *app.Application) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how many articles each source has left to review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := application.Stats.Load(cmd.Context()); err != nil {
				return err
			}
			renderStatistics(cmd.OutOrStdout(), application.Store.Snapshot().Statistics)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
