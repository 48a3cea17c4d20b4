package output

import (
	"strconv"

	"github.com/rpgo/fintrack/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount with its currency symbol, thousands separators and 2 decimals.
// Codes without a known symbol are written as a prefix, e.g. "CAD 12.00".
func FormatCurrency(amount decimal.Decimal, currency string) string {
	return money.Format(amount, currency)
}

// FormatOptionalCurrency formats a nil amount as "n/a".
func FormatOptionalCurrency(amount *decimal.Decimal, currency string) string {
	if amount == nil {
		return "n/a"
	}
	return FormatCurrency(*amount, currency)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.1083) as a percentage (10.83%).
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

var decimalHundred = decimal.NewFromInt(100)

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func optionalFixed(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
