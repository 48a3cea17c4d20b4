package calculation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultPrimaryCurrency is used when a ledger does not name one
const DefaultPrimaryCurrency = domain.CurrencyCRC

const maxRateLookups = 4

// CalculationEngine orchestrates the calculators over a ledger. It does the only blocking
// work (rate lookups) up front, then hands plain values to the pure calculators.
// Rate lookups run concurrently, so Logger must be safe for concurrent use.
type CalculationEngine struct {
	// Rates overrides the ledger's own rate table when set
	Rates  RateSource
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// SetRateSource sets the rate source consulted for salary conversions
func (ce *CalculationEngine) SetRateSource(r RateSource) {
	ce.Rates = r
}

func (ce *CalculationEngine) rateSource(ledger *domain.Ledger) RateSource {
	if ce.Rates != nil {
		return ce.Rates
	}
	return NewTableRateSource(ledger.ExchangeRates)
}

// PrimaryCurrency returns the ledger's primary currency or the default
func PrimaryCurrency(ledger *domain.Ledger) string {
	if c := strings.TrimSpace(ledger.PrimaryCurrency); c != "" {
		return strings.ToUpper(c)
	}
	return DefaultPrimaryCurrency
}

// SalaryBreakdowns breaks down every salary record, resolving the conversion rate for each.
// Rate failures degrade to an unavailable conversion and are logged, never returned.
func (ce *CalculationEngine) SalaryBreakdowns(ctx context.Context, ledger *domain.Ledger) ([]domain.SalaryBreakdown, error) {
	rates, err := ce.resolveRates(ctx, ledger)
	if err != nil {
		return nil, err
	}

	calc := NewSalaryCalculator(ledger.SalarySettings)
	out := make([]domain.SalaryBreakdown, 0, len(ledger.Salaries))
	for _, record := range ledger.Salaries {
		b := calc.Breakdown(record, rates[domain.RateKey(ConversionPair(record.Currency))])
		if b.RentTax.Source == domain.BracketSourceDefault || b.RentTax.Source == domain.BracketSourceSettings {
			ce.Logger.Debugf("salary %s has no bracket snapshot, using %s table", record.ID, b.RentTax.Source)
		}
		out = append(out, b)
	}
	return out, nil
}

// resolveRates looks up each distinct conversion pair once, at most maxRateLookups at a
// time. Only cancellation is returned as an error.
func (ce *CalculationEngine) resolveRates(ctx context.Context, ledger *domain.Ledger) (map[string]*decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pairs := make(map[string][2]string)
	for _, record := range ledger.Salaries {
		from, to := ConversionPair(record.Currency)
		pairs[domain.RateKey(from, to)] = [2]string{from, to}
	}

	source := ce.rateSource(ledger)
	resolved := make(map[string]*decimal.Decimal, len(pairs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxRateLookups)
	for key, pair := range pairs {
		key, pair := key, pair
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rate := ce.lookupRate(gctx, source, pair[0], pair[1])
			mu.Lock()
			resolved[key] = rate
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a lookup cut short by cancellation was logged as a failure; report the cancellation instead
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (ce *CalculationEngine) lookupRate(ctx context.Context, rates RateSource, from, to string) *decimal.Decimal {
	rate, ok, err := rates.Rate(ctx, from, to)
	if err != nil {
		ce.Logger.Warnf("exchange rate %s lookup failed: %v", domain.RateKey(from, to), err)
		return nil
	}
	if !ok {
		ce.Logger.Infof("exchange rate %s unavailable", domain.RateKey(from, to))
		return nil
	}
	return &rate
}

// StockBreakdowns breaks down every vesting event under the ledger's global stock settings
func (ce *CalculationEngine) StockBreakdowns(ledger *domain.Ledger) ([]domain.StockBreakdown, domain.StockSummary) {
	out := make([]domain.StockBreakdown, 0, len(ledger.StockPeriods))
	for _, p := range ledger.StockPeriods {
		b := BreakdownStock(p, ledger.StocksSettings)
		if b.Warning {
			ce.Logger.Warnf("stock period %s: deductions exceed gross, net clamped to zero", p.ID)
		}
		out = append(out, b)
	}
	return out, SummarizeStocks(out)
}

// StockNetCRC converts the total net of stocks into CRC through the rate source. It returns
// the USD→CRC rate used and the converted total, both nil when no rate resolves.
func (ce *CalculationEngine) StockNetCRC(ctx context.Context, ledger *domain.Ledger, stocks []domain.StockBreakdown) (rate, total *decimal.Decimal, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	rate = ce.lookupRate(ctx, ce.rateSource(ledger), domain.CurrencyUSD, domain.CurrencyCRC)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if rate == nil {
		return nil, nil, nil
	}
	sum := decimal.Zero
	for _, s := range stocks {
		if crc := ConvertStockNet(s, rate); crc != nil {
			sum = sum.Add(*crc)
		}
	}
	return rate, &sum, nil
}

// Run computes every view-model for ledger with now as the dashboard reference time
func (ce *CalculationEngine) Run(ctx context.Context, ledger *domain.Ledger, now time.Time) (*domain.LedgerReport, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	primary := PrimaryCurrency(ledger)
	ce.Logger.Debugf("running ledger: %d salaries, %d stock periods, %d expenses", len(ledger.Salaries), len(ledger.StockPeriods), len(ledger.Expenses))

	salaries, err := ce.SalaryBreakdowns(ctx, ledger)
	if err != nil {
		return nil, fmt.Errorf("salary breakdowns: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stocks, stockSummary := ce.StockBreakdowns(ledger)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	expenses := Aggregate(ledger.Expenses, ledger.ExchangeRates)
	for _, c := range expenses.Currencies() {
		if gt := expenses.GrandTotals[c]; !gt.HasAllRates {
			ce.Logger.Infof("grand total in %s is incomplete: %d amounts without a rate", c, gt.Unresolved)
		}
	}

	dashboard := BuildDashboard(ledger.Expenses, primary, ledger.ExchangeRates, now)

	report := &domain.LedgerReport{
		GeneratedAt:     now,
		PrimaryCurrency: primary,
		Salaries:        salaries,
		Stocks:          stocks,
		StockSummary:    stockSummary,
		Expenses:        expenses,
		Dashboard:       dashboard,
	}
	if len(ledger.Salaries) > 0 {
		bonus := YearEndBonus(ledger.Salaries, now.Year())
		report.Bonus = &bonus
	}
	return report, nil
}
