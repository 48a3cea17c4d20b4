package commands

import (
	"github.com/rpgo/fintrack/internal/calculation"
	"github.com/rpgo/fintrack/internal/output"
	"github.com/spf13/cobra"
)

func newSalaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "salary",
		Short: "Show salary breakdowns",
		Long:  "Show deductions, rent tax, net pay and converted net pay for every salary record.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := a.loadLedger()
			if err != nil {
				return err
			}
			salaries, err := a.engine().SalaryBreakdowns(cmd.Context(), ledger)
			if err != nil {
				return err
			}
			output.WriteSalaries(cmd.OutOrStdout(), salaries)
			for _, s := range salaries {
				if s.ConvertedNetMonthly == nil {
					from, to := calculation.ConversionPair(s.Currency)
					cmd.PrintErrln(FormatWarning("no " + from + "_" + to + " rate: converted net pay for \"" + s.Label + "\" unavailable"))
				}
			}
			return nil
		},
	}
}
