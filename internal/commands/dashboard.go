package commands

import (
	"github.com/rpgo/fintrack/internal/calculation"
	"github.com/rpgo/fintrack/internal/output"
	"github.com/rpgo/fintrack/pkg/dateutil"
	"github.com/spf13/cobra"
)

func newDashboardCommand(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the monthly expense dashboard",
		Long: `Show paid and pending expenses for a month, the change from the previous
month, the monthly trend for the year and year-to-date totals.`,
		Example: `  fintrack dashboard
  fintrack dashboard --month 2025-03`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := calculation.Now()
			if month != "" {
				m, err := dateutil.ParseMonth(month)
				if err != nil {
					return err
				}
				now = m
			}

			ledger, err := a.loadLedger()
			if err != nil {
				return err
			}
			stats := calculation.BuildDashboard(ledger.Expenses, calculation.PrimaryCurrency(ledger), ledger.ExchangeRates, now)
			output.WriteDashboard(cmd.OutOrStdout(), stats)
			if !stats.PrimaryYearToDate.HasAllRates {
				cmd.PrintErrln(FormatWarning("year-to-date total in " + stats.PrimaryYearToDate.Currency + " excludes amounts without an exchange rate"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to show as YYYY-MM (default: current month)")
	return cmd
}
