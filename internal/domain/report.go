package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DeductionResult is one applied deduction rule
type DeductionResult struct {
	RuleID            string          `json:"rule_id"`
	Name              string          `json:"name"`
	Kind              DeductionKind   `json:"kind"`
	Rate              decimal.Decimal `json:"rate"`
	MonthlyAmount     decimal.Decimal `json:"monthly_amount"`
	FortnightlyAmount decimal.Decimal `json:"fortnightly_amount"`
}

// BracketResult is the slice of a base taxed by one bracket
type BracketResult struct {
	BracketID     string           `json:"bracket_id"`
	Min           decimal.Decimal  `json:"min"`
	Max           *decimal.Decimal `json:"max"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	Tax           decimal.Decimal  `json:"tax"`
}

// BracketSchedule is the outcome of walking a progressive schedule
type BracketSchedule struct {
	PerBracket       []BracketResult `json:"per_bracket"`
	MonthlyTotal     decimal.Decimal `json:"monthly_total"`
	FortnightlyTotal decimal.Decimal `json:"fortnightly_total"`
}

// BracketSource names the table a salary's rent tax was computed from
type BracketSource string

const (
	BracketSourceNone     BracketSource = ""
	BracketSourceRecord   BracketSource = "record"
	BracketSourceSettings BracketSource = "settings"
	BracketSourceDefault  BracketSource = "default"
)

// RentTax is the progressive salary tax section of a salary breakdown
type RentTax struct {
	BracketSchedule
	AppliedToCRC bool          `json:"applied_to_crc"`
	Source       BracketSource `json:"source,omitempty"`
}

// SalaryBreakdown is the computed view of one salary record.
// Converted fields are nil when no exchange rate was available.
type SalaryBreakdown struct {
	RecordID                string            `json:"record_id"`
	Label                   string            `json:"label"`
	EffectiveDate           time.Time         `json:"effective_date"`
	Currency                string            `json:"currency"`
	GrossMonthly            decimal.Decimal   `json:"gross_monthly"`
	GrossFortnightly        decimal.Decimal   `json:"gross_fortnightly"`
	Deductions              []DeductionResult `json:"deductions"`
	DeductionsTotal         decimal.Decimal   `json:"deductions_total"`
	RentTax                 RentTax           `json:"rent_tax"`
	TotalDeductions         decimal.Decimal   `json:"total_deductions"`
	NetMonthly              decimal.Decimal   `json:"net_monthly"`
	NetFortnightly          decimal.Decimal   `json:"net_fortnightly"`
	ConvertedCurrency       string            `json:"converted_currency"`
	ExchangeRate            *decimal.Decimal  `json:"exchange_rate"`
	ConvertedNetMonthly     *decimal.Decimal  `json:"converted_net_monthly"`
	ConvertedNetFortnightly *decimal.Decimal  `json:"converted_net_fortnightly"`
}

// ConversionAvailable reports whether the converted net figures were computed
func (b SalaryBreakdown) ConversionAvailable() bool {
	return b.ConvertedNetMonthly != nil
}

// StockBreakdown is the computed view of one vesting event, in USD
type StockBreakdown struct {
	PeriodID             string            `json:"period_id"`
	VestingDate          time.Time         `json:"vesting_date"`
	Quantity             decimal.Decimal   `json:"quantity"`
	StockPriceUSD        decimal.Decimal   `json:"stock_price_usd"`
	Gross                decimal.Decimal   `json:"gross"`
	USTax                decimal.Decimal   `json:"us_tax"`
	BrokerCost           decimal.Decimal   `json:"broker_cost"`
	LocalTax             decimal.Decimal   `json:"local_tax"`
	OtherDeductions      []DeductionResult `json:"other_deductions"`
	OtherDeductionsTotal decimal.Decimal   `json:"other_deductions_total"`
	TotalDeductions      decimal.Decimal   `json:"total_deductions"`
	Net                  decimal.Decimal   `json:"net"`
	// Warning is set when deductions exceed gross and Net was clamped to zero
	Warning bool `json:"warning"`
}

// StockSummary totals a set of vesting breakdowns
type StockSummary struct {
	Periods         int             `json:"periods"`
	Gross           decimal.Decimal `json:"gross"`
	USTax           decimal.Decimal `json:"us_tax"`
	BrokerCost      decimal.Decimal `json:"broker_cost"`
	LocalTax        decimal.Decimal `json:"local_tax"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	Net             decimal.Decimal `json:"net"`
	Warnings        int             `json:"warnings"`
}

// CurrencyTotals sums expense amounts of a single currency
type CurrencyTotals struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

// Add returns the element-wise sum of two totals
func (c CurrencyTotals) Add(o CurrencyTotals) CurrencyTotals {
	return CurrencyTotals{Total: c.Total.Add(o.Total), Paid: c.Paid.Add(o.Paid), Pending: c.Pending.Add(o.Pending)}
}

// GrandTotal is every expense amount converted into one target currency.
// HasAllRates is false when at least one amount could not be converted and was left out.
type GrandTotal struct {
	Currency    string          `json:"currency"`
	Total       decimal.Decimal `json:"total"`
	HasAllRates bool            `json:"has_all_rates"`
	Unresolved  int             `json:"unresolved"`
}

// ExpenseTotals is the multi-currency aggregation of an expense set
type ExpenseTotals struct {
	PerCurrency map[string]CurrencyTotals `json:"per_currency"`
	GrandTotals map[string]GrandTotal     `json:"grand_totals"`
}

// Currencies returns the observed currencies in alphabetical order
func (t ExpenseTotals) Currencies() []string {
	return SortedCurrencies(t.PerCurrency)
}

// SortedCurrencies returns the keys of a per-currency map in alphabetical order
func SortedCurrencies[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MonthComparison compares one currency's spend in the current and previous month
type MonthComparison struct {
	Currency      string          `json:"currency"`
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// MonthlyTrend holds twelve monthly totals, January first
type MonthlyTrend [12]decimal.Decimal

// DashboardStats is the dashboard view-model for one reference month
type DashboardStats struct {
	Month             time.Time                 `json:"month"`
	Year              int                       `json:"year"`
	PrimaryCurrency   string                    `json:"primary_currency"`
	Currencies        []string                  `json:"currencies"`
	PendingThisMonth  map[string]decimal.Decimal `json:"pending_this_month"`
	PaidPending       map[string]CurrencyTotals `json:"paid_pending"`
	Comparison        []MonthComparison         `json:"comparison"`
	MonthlyTrend      map[string]MonthlyTrend   `json:"monthly_trend"`
	YearToDate        map[string]CurrencyTotals `json:"year_to_date"`
	PrimaryYearToDate GrandTotal                `json:"primary_year_to_date"`
}

// BonusMonth is one month of the year-end bonus accrual window
type BonusMonth struct {
	Month    time.Time       `json:"month"`
	RecordID string          `json:"record_id,omitempty"`
	Gross    decimal.Decimal `json:"gross"`
	Skipped  bool            `json:"skipped"`
}

// BonusBreakdown is the year-end bonus (aguinaldo) for one year
type BonusBreakdown struct {
	Year          int             `json:"year"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	Currency      string          `json:"currency"`
	Months        []BonusMonth    `json:"months"`
	AccruedTotal  decimal.Decimal `json:"accrued_total"`
	Amount        decimal.Decimal `json:"amount"`
	SkippedMonths int             `json:"skipped_months"`
}

// LedgerReport bundles every view-model computed from a ledger
type LedgerReport struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	PrimaryCurrency string            `json:"primary_currency"`
	Salaries        []SalaryBreakdown `json:"salaries"`
	Stocks          []StockBreakdown  `json:"stocks"`
	StockSummary    StockSummary      `json:"stock_summary"`
	Expenses        ExpenseTotals     `json:"expenses"`
	Dashboard       DashboardStats    `json:"dashboard"`
	Bonus           *BonusBreakdown   `json:"bonus,omitempty"`
}
