package commands

import (
	"fmt"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/internal/output"
	"github.com/spf13/cobra"
)

func newStocksCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stocks",
		Short: "Show stock vesting breakdowns",
		Long: `Show gross value, US tax, broker cost, local tax, other deductions and net
for every vesting event, plus the total net converted to CRC when a USD_CRC
rate is available.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := a.loadLedger()
			if err != nil {
				return err
			}
			engine := a.engine()
			stocks, summary := engine.StockBreakdowns(ledger)
			out := cmd.OutOrStdout()
			output.WriteStocks(out, stocks, summary)
			if len(stocks) == 0 {
				return nil
			}

			rate, total, err := engine.StockNetCRC(cmd.Context(), ledger, stocks)
			if err != nil {
				return err
			}
			if rate == nil {
				cmd.PrintErrln(FormatWarning("no USD_CRC rate: net in CRC unavailable"))
				return nil
			}
			fmt.Fprintf(out, "Net in CRC at %s: %s\n", rate.String(), output.FormatCurrency(*total, domain.CurrencyCRC))
			return nil
		},
	}
}
