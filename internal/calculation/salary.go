package calculation

import (
	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/pkg/money"
	"github.com/shopspring/decimal"
)

// SalaryCalculator breaks salary records down into deductions, rent tax and net pay.
type SalaryCalculator struct {
	// FallbackBrackets is the global rent-tax table, used only for records that
	// carry no bracket snapshot of their own.
	FallbackBrackets []domain.TaxBracket
}

// NewSalaryCalculator creates a salary calculator that falls back to settings' bracket table
func NewSalaryCalculator(settings domain.SalarySettings) *SalaryCalculator {
	return &SalaryCalculator{FallbackBrackets: domain.CopyBrackets(settings.RentTaxBrackets)}
}

// ConversionPair returns the currency pair whose rate converts a salary's net pay:
// CRC salaries are shown in USD (rate quoted USD→CRC), everything else in CRC.
func ConversionPair(currency string) (from, to string) {
	if currency == domain.CurrencyCRC {
		return domain.CurrencyUSD, domain.CurrencyCRC
	}
	return currency, domain.CurrencyCRC
}

// ConvertedCurrency is the currency a salary in currency is converted into
func ConvertedCurrency(currency string) string {
	if currency == domain.CurrencyCRC {
		return domain.CurrencyUSD
	}
	return domain.CurrencyCRC
}

// Breakdown computes the breakdown of record. A nil or zero exchangeRate leaves the
// converted figures nil; callers render that as "unavailable".
func (sc *SalaryCalculator) Breakdown(record domain.SalaryRecord, exchangeRate *decimal.Decimal) domain.SalaryBreakdown {
	gross := record.GrossAmount
	deductions := ApplyDeductions(gross, record.Deductions)
	deductionsTotal := TotalDeductions(deductions)
	rentTax := sc.rentTax(record)

	total := deductionsTotal.Add(rentTax.MonthlyTotal)
	net := money.NonNegative(gross.Sub(total))

	b := domain.SalaryBreakdown{
		RecordID:          record.ID,
		Label:             record.Label,
		EffectiveDate:     record.EffectiveDate,
		Currency:          record.Currency,
		GrossMonthly:      gross,
		GrossFortnightly:  money.Half(gross),
		Deductions:        deductions,
		DeductionsTotal:   deductionsTotal,
		RentTax:           rentTax,
		TotalDeductions:   total,
		NetMonthly:        net,
		NetFortnightly:    money.Half(net),
		ConvertedCurrency: ConvertedCurrency(record.Currency),
	}

	if exchangeRate != nil && !exchangeRate.IsZero() {
		rate := *exchangeRate
		monthly := convertNet(b.NetMonthly, record.Currency, rate)
		fortnightly := convertNet(b.NetFortnightly, record.Currency, rate)
		b.ExchangeRate = &rate
		b.ConvertedNetMonthly = &monthly
		b.ConvertedNetFortnightly = &fortnightly
	}

	return b
}

func convertNet(amount decimal.Decimal, currency string, rate decimal.Decimal) decimal.Decimal {
	if currency == domain.CurrencyCRC {
		return money.RoundCents(amount.Div(rate))
	}
	return money.RoundCents(amount.Mul(rate))
}

func (sc *SalaryCalculator) rentTax(record domain.SalaryRecord) domain.RentTax {
	if record.Currency != domain.CurrencyCRC {
		return domain.RentTax{
			BracketSchedule: domain.BracketSchedule{
				PerBracket:       []domain.BracketResult{},
				MonthlyTotal:     decimal.Zero,
				FortnightlyTotal: decimal.Zero,
			},
			AppliedToCRC: false,
		}
	}

	brackets, source := sc.bracketsFor(record)
	return domain.RentTax{
		BracketSchedule: ApplyBrackets(record.GrossAmount, brackets),
		AppliedToCRC:    true,
		Source:          source,
	}
}

// bracketsFor prefers the record's own snapshot, then the global table, then the built-in schedule
func (sc *SalaryCalculator) bracketsFor(record domain.SalaryRecord) ([]domain.TaxBracket, domain.BracketSource) {
	if len(record.TaxBrackets) > 0 {
		return record.TaxBrackets, domain.BracketSourceRecord
	}
	if len(sc.FallbackBrackets) > 0 {
		return sc.FallbackBrackets, domain.BracketSourceSettings
	}
	return domain.DefaultRentTaxBrackets(), domain.BracketSourceDefault
}
