package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeductionKind selects how a DeductionRule's Rate is interpreted
type DeductionKind string

const (
	// DeductionPercentage rates are decimal fractions of the base (0.1083 = 10.83%)
	DeductionPercentage DeductionKind = "percentage"
	// DeductionFixed rates are flat currency amounts
	DeductionFixed DeductionKind = "fixed"
)

// CurrencyCRC is the local currency the rent-tax schedule is defined in
const CurrencyCRC = "CRC"

// CurrencyUSD is the currency stock prices and broker costs are quoted in
const CurrencyUSD = "USD"

// DeductionRule is a single payroll or vesting deduction.
// Inactive rules stay in the record for display and editing but never count toward totals.
type DeductionRule struct {
	ID     string          `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Kind   DeductionKind   `yaml:"kind" json:"kind"`
	Rate   decimal.Decimal `yaml:"rate" json:"rate"`
	Active bool            `yaml:"active" json:"active"`
}

// TaxBracket is one band of a progressive schedule. A nil Max is the unbounded top band.
type TaxBracket struct {
	ID   string           `yaml:"id" json:"id"`
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// SalaryRecord is an immutable salary snapshot. Deductions and TaxBrackets are copies taken
// when the record was created so historical breakdowns do not drift with global settings.
type SalaryRecord struct {
	ID            string          `yaml:"id" json:"id"`
	Label         string          `yaml:"label" json:"label"`
	EffectiveDate time.Time       `yaml:"effective_date" json:"effective_date"`
	GrossAmount   decimal.Decimal `yaml:"gross_amount" json:"gross_amount"`
	Currency      string          `yaml:"currency" json:"currency"`
	Deductions    []DeductionRule `yaml:"deductions" json:"deductions"`
	TaxBrackets   []TaxBracket    `yaml:"tax_brackets,omitempty" json:"tax_brackets,omitempty"`
}

// SalarySettings holds the process-wide defaults used to seed new salary records
type SalarySettings struct {
	Deductions      []DeductionRule `yaml:"deductions" json:"deductions"`
	RentTaxBrackets []TaxBracket    `yaml:"rent_tax_brackets" json:"rent_tax_brackets"`
}

// NewSalaryRecord seeds a record from the current settings. The deduction and bracket
// slices are deep copies; later edits to settings do not reach the record.
func NewSalaryRecord(settings SalarySettings, label string, effective time.Time, gross decimal.Decimal, currency string) SalaryRecord {
	return SalaryRecord{
		ID:            uuid.NewString(),
		Label:         label,
		EffectiveDate: effective,
		GrossAmount:   gross,
		Currency:      currency,
		Deductions:    CopyDeductions(settings.Deductions),
		TaxBrackets:   CopyBrackets(settings.RentTaxBrackets),
	}
}

// CopyDeductions returns an independent copy of rules
func CopyDeductions(rules []DeductionRule) []DeductionRule {
	if rules == nil {
		return nil
	}
	out := make([]DeductionRule, len(rules))
	copy(out, rules)
	return out
}

// CopyBrackets returns an independent copy of brackets, including the Max pointers
func CopyBrackets(brackets []TaxBracket) []TaxBracket {
	if brackets == nil {
		return nil
	}
	out := make([]TaxBracket, len(brackets))
	for i, b := range brackets {
		out[i] = b
		if b.Max != nil {
			m := *b.Max
			out[i].Max = &m
		}
	}
	return out
}

// DefaultDeductions returns the payroll deductions new installations start with
func DefaultDeductions() []DeductionRule {
	return []DeductionRule{
		{ID: "ccss", Name: "CCSS", Kind: DeductionPercentage, Rate: decimal.RequireFromString("0.1083"), Active: true},
	}
}

// DefaultRentTaxBrackets returns the monthly salary tax schedule in CRC
func DefaultRentTaxBrackets() []TaxBracket {
	bound := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return []TaxBracket{
		{ID: "exempt", Min: decimal.Zero, Max: bound(918000), Rate: decimal.Zero},
		{ID: "10", Min: decimal.NewFromInt(918000), Max: bound(1347000), Rate: decimal.RequireFromString("0.10")},
		{ID: "15", Min: decimal.NewFromInt(1347000), Max: bound(2364000), Rate: decimal.RequireFromString("0.15")},
		{ID: "20", Min: decimal.NewFromInt(2364000), Max: bound(4727000), Rate: decimal.RequireFromString("0.20")},
		{ID: "25", Min: decimal.NewFromInt(4727000), Max: nil, Rate: decimal.RequireFromString("0.25")},
	}
}

// DefaultSalarySettings returns the seed settings for a new ledger
func DefaultSalarySettings() SalarySettings {
	return SalarySettings{
		Deductions:      DefaultDeductions(),
		RentTaxBrackets: DefaultRentTaxBrackets(),
	}
}
