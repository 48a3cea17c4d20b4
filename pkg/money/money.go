package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
	two     = decimal.NewFromInt(2)
)

// RoundCents rounds to two decimals, half-up on the scaled integer: floor(x*100 + 0.5) / 100.
// Unlike decimal.Round, ties on negative values move toward positive infinity.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Mul(hundred).Add(half).Floor().Div(hundred)
}

// Half returns a monthly figure split into its fortnightly share, rounded to cents.
func Half(d decimal.Decimal) decimal.Decimal {
	return RoundCents(d.Div(two))
}

// NonNegative clamps negative amounts to zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds all amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// PercentChange returns change/previous*100 rounded to cents, or zero when there is no positive baseline.
func PercentChange(previous, current decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return RoundCents(current.Sub(previous).Div(previous).Mul(hundred))
}

var symbols = map[string]string{
	"CRC": "₡",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders amount for display, e.g. ₡1,234,567.89 or CAD 12.00.
func Format(amount decimal.Decimal, currency string) string {
	s := group(RoundCents(amount).StringFixed(2))
	if sym, ok := symbols[strings.ToUpper(currency)]; ok {
		if strings.HasPrefix(s, "-") {
			return "-" + sym + s[1:]
		}
		return sym + s
	}
	return strings.ToUpper(currency) + " " + s
}

func group(fixed string) string {
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}
