package commands

import (
	"github.com/rpgo/fintrack/internal/calculation"
	"github.com/rpgo/fintrack/internal/output"
	"github.com/spf13/cobra"
)

func newExpensesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expenses",
		Short: "Show expense totals per currency",
		Long: `Show total, paid and pending expenses per currency, plus the grand total of
every expense converted into each observed currency. Grand totals marked with *
exclude amounts that have no exchange rate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := a.loadLedger()
			if err != nil {
				return err
			}
			output.WriteExpenses(cmd.OutOrStdout(), calculation.Aggregate(ledger.Expenses, ledger.ExchangeRates))
			return nil
		},
	}
}
