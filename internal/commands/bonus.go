package commands

import (
	"fmt"

	"github.com/rpgo/fintrack/internal/calculation"
	"github.com/rpgo/fintrack/internal/output"
	"github.com/spf13/cobra"
)

func newBonusCommand(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "bonus",
		Short: "Compute the year-end bonus (aguinaldo)",
		Long: `Compute the year-end bonus for a year: one twelfth of the gross salary
accrued from December 1 of the previous year to November 30.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = calculation.Now().Year()
			}
			if year < 1 {
				return fmt.Errorf("invalid year: %d", year)
			}
			ledger, err := a.loadLedger()
			if err != nil {
				return err
			}
			b := calculation.YearEndBonus(ledger.Salaries, year)
			output.WriteBonus(cmd.OutOrStdout(), b)
			if b.SkippedMonths > 0 {
				cmd.PrintErrln(FormatWarning(fmt.Sprintf("%d month(s) in another currency than %s were skipped", b.SkippedMonths, b.Currency)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "bonus year (default: current year)")
	return cmd
}
