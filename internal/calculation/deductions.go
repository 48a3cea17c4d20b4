package calculation

import (
	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/pkg/money"
	"github.com/shopspring/decimal"
)

// ApplyDeductions evaluates the active rules against base, keeping input order.
// Every rule is computed against the full base, not a running remainder.
func ApplyDeductions(base decimal.Decimal, rules []domain.DeductionRule) []domain.DeductionResult {
	results := make([]domain.DeductionResult, 0, len(rules))
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		amount := money.RoundCents(deductionAmount(base, rule))
		results = append(results, domain.DeductionResult{
			RuleID:            rule.ID,
			Name:              rule.Name,
			Kind:              rule.Kind,
			Rate:              rule.Rate,
			MonthlyAmount:     amount,
			FortnightlyAmount: money.Half(amount),
		})
	}
	return results
}

func deductionAmount(base decimal.Decimal, rule domain.DeductionRule) decimal.Decimal {
	if rule.Kind == domain.DeductionPercentage {
		return base.Mul(rule.Rate)
	}
	return rule.Rate
}

// TotalDeductions sums the monthly amounts of already-applied deductions
func TotalDeductions(results []domain.DeductionResult) decimal.Decimal {
	total := decimal.Zero
	for _, r := range results {
		total = total.Add(r.MonthlyAmount)
	}
	return total
}
