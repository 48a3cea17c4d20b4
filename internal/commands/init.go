package commands

import (
	"fmt"
	"os"

	"github.com/rpgo/fintrack/internal/calculation"
	"github.com/rpgo/fintrack/internal/config"
	"github.com/spf13/cobra"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example ledger",
		Long: `Write an example ledger with two salary records, two vesting events, a few
expenses in CRC and USD and an exchange-rate table. Dates are anchored on the
current month. Defaults to the --ledger path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.ledgerPath()
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			parser := config.NewInputParser()
			if err := parser.SaveToFile(parser.CreateExampleLedger(calculation.Now()), path); err != nil {
				return err
			}
			a.logger.Info("example ledger written", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess("Example ledger written to "+path))
			fmt.Fprintln(cmd.OutOrStdout(), FormatSubtle("Next: fintrack report --ledger "+path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
