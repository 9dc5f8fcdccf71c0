package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"NewsDesk/internal/app"
)

func addReport(topLevel *cobra.Command, application *app.Application) {
	var (
		opts   filterOptions
		copyIt bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "report <id>...",
		Short: "Generate the email report for the given articles",
		Long: `Report asks the server to render the email for the selected articles and
prints a plain-text preview. The sanitized HTML can be written to a file and
the original HTML copied to the clipboard.

Examples:
  newsdesk report 42 43
  newsdesk report 42 --copy
  newsdesk report 42 43 --out digest.html --period last-30-days`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if err := load(cmd.Context(), application, &opts); err != nil {
				return err
			}

			application.Editor.ClearSelection()
			picked := make(map[string]bool, len(args))
			for _, id := range args {
				if picked[id] {
					continue
				}
				picked[id] = true
				if _, err := application.Editor.Toggle(id); err != nil {
					return err
				}
			}

			report, err := application.Reports.Generate(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			renderReport(w, report)

			if out != "" {
				if err := os.WriteFile(out, []byte(report.Preview.Safe), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				_, _ = faint.Fprintf(w, "Saved to %s\n", out)
			}
			if copyIt {
				renderCopyStatus(w, application.Reports.Copy(report))
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&copyIt, "copy", false, "copy the report to the clipboard")
	cmd.Flags().StringVar(&out, "out", "", "write the sanitized HTML to this file")
	topLevel.AddCommand(cmd)
}
