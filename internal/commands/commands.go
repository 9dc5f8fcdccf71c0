package commands

import (
	"github.com/spf13/cobra"

	"NewsDesk/internal/app"
)

// New builds the root command bound to application.
func New(application *app.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsdesk",
		Short: "Review, classify and report regulatory news from the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
	}

	AddCommands(cmd, application)
	return cmd
}

// AddCommands registers every subcommand on topLevel.
func AddCommands(topLevel *cobra.Command, application *app.Application) {
	addStats(topLevel, application)
	addList(topLevel, application)
	addStatus(topLevel, application)
	addEdit(topLevel, application)
	addReport(topLevel, application)
	addShell(topLevel, application)
}
