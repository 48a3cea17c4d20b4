package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rpgo/fintrack/internal/calculation"
	"github.com/rpgo/fintrack/internal/config"
	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/internal/output"
)

func (a *app) ledgerPath() string {
	if p := a.v.GetString("ledger"); p != "" {
		return p
	}
	return DefaultLedgerFile
}

func (a *app) loadLedger() (*domain.Ledger, error) {
	path := a.ledgerPath()
	ledger, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("ledger loaded", "path", path, "salaries", len(ledger.Salaries), "stock_periods", len(ledger.StockPeriods), "expenses", len(ledger.Expenses))
	return ledger, nil
}

func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(calculation.NewSlogLogger(a.logger))
	return engine
}

// report loads the ledger and runs the engine with now as the reference time
func (a *app) report(ctx context.Context, now time.Time) (*domain.LedgerReport, error) {
	ledger, err := a.loadLedger()
	if err != nil {
		return nil, err
	}
	report, err := a.engine().Run(ctx, ledger, now)
	if err != nil {
		return nil, fmt.Errorf("calculating report: %w", err)
	}
	return report, nil
}

// printNotes writes the report's degradation notes as warnings
func printNotes(w io.Writer, report *domain.LedgerReport) {
	for _, n := range output.ReportNotes(report) {
		fmt.Fprintln(w, FormatWarning(n))
	}
}
