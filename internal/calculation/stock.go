package calculation

import (
	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/pkg/money"
	"github.com/shopspring/decimal"
)

// BreakdownStock runs a vesting event through the vesting pipeline:
// gross → US tax → broker fee → local tax → other deductions → net.
// A nil settings pointer means no policy has been saved and all rates are zero.
func BreakdownStock(period domain.StockPeriod, settings *domain.StocksSettings) domain.StockBreakdown {
	s := domain.DefaultStocksSettings()
	if settings != nil {
		s = *settings
	}

	gross := period.Quantity.Mul(period.StockPriceUSD)
	usTax := gross.Mul(s.USTaxPercentage)
	broker := s.BrokerCostUSD
	// Local tax base excludes US tax and the broker fee and is floored at zero
	localTax := money.NonNegative(gross.Sub(usTax).Sub(broker)).Mul(s.LocalTaxPercentage)

	others := ApplyDeductions(gross, s.OtherDeductions)
	othersTotal := TotalDeductions(others)

	deducted := money.Sum(usTax, localTax, broker, othersTotal)
	net := money.NonNegative(gross.Sub(deducted))

	return domain.StockBreakdown{
		PeriodID:             period.ID,
		VestingDate:          period.VestingDate,
		Quantity:             period.Quantity,
		StockPriceUSD:        period.StockPriceUSD,
		Gross:                money.RoundCents(gross),
		USTax:                money.RoundCents(usTax),
		BrokerCost:           money.RoundCents(broker),
		LocalTax:             money.RoundCents(localTax),
		OtherDeductions:      others,
		OtherDeductionsTotal: othersTotal,
		TotalDeductions:      money.RoundCents(deducted),
		Net:                  money.RoundCents(net),
		Warning:              deducted.GreaterThan(gross),
	}
}

// ConvertStockNet converts a breakdown's USD net into CRC, or returns nil without a usable rate
func ConvertStockNet(b domain.StockBreakdown, usdToCRC *decimal.Decimal) *decimal.Decimal {
	if usdToCRC == nil || usdToCRC.IsZero() {
		return nil
	}
	v := money.RoundCents(b.Net.Mul(*usdToCRC))
	return &v
}

// SummarizeStocks totals a set of vesting breakdowns
func SummarizeStocks(breakdowns []domain.StockBreakdown) domain.StockSummary {
	sum := domain.StockSummary{
		Gross:           decimal.Zero,
		USTax:           decimal.Zero,
		BrokerCost:      decimal.Zero,
		LocalTax:        decimal.Zero,
		OtherDeductions: decimal.Zero,
		Net:             decimal.Zero,
	}
	for _, b := range breakdowns {
		sum.Periods++
		sum.Gross = sum.Gross.Add(b.Gross)
		sum.USTax = sum.USTax.Add(b.USTax)
		sum.BrokerCost = sum.BrokerCost.Add(b.BrokerCost)
		sum.LocalTax = sum.LocalTax.Add(b.LocalTax)
		sum.OtherDeductions = sum.OtherDeductions.Add(b.OtherDeductionsTotal)
		sum.Net = sum.Net.Add(b.Net)
		if b.Warning {
			sum.Warnings++
		}
	}
	return sum
}
