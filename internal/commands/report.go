package commands

import (
	"fmt"
	"strings"

	"github.com/rpgo/fintrack/internal/calculation"
	"github.com/rpgo/fintrack/internal/output"
	"github.com/spf13/cobra"
)

func newReportCommand(a *app) *cobra.Command {
	var (
		format    string
		save      bool
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the full ledger report",
		Long: fmt.Sprintf(`Render salaries, stock vesting, expenses, the dashboard and the year-end bonus
in one report.

Formats: %s
Aliases: %s
With --save, "all" writes the console report and the detailed CSV.`,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.report(cmd.Context(), calculation.Now())
			if err != nil {
				return err
			}

			if save {
				paths, err := output.GenerateReport(report, format, outputDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess("Report saved to "+p))
				}
				return nil
			}

			data, err := output.Render(report, format)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			printNotes(cmd.ErrOrStderr(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "console", "output format")
	cmd.Flags().BoolVar(&save, "save", false, "save the report to a file instead of printing it")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory for saved reports")
	return cmd
}
