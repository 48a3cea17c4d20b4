package calculation

import (
	"sort"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/pkg/money"
	"github.com/shopspring/decimal"
)

// ApplyBrackets walks a progressive schedule over base. Each bracket taxes only the slice
// of base inside its own span; taxable and tax are rounded per bracket, so totals are
// sums of rounded figures.
func ApplyBrackets(base decimal.Decimal, brackets []domain.TaxBracket) domain.BracketSchedule {
	sorted := make([]domain.TaxBracket, len(brackets))
	copy(sorted, brackets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Min.LessThan(sorted[j].Min) })

	schedule := domain.BracketSchedule{
		PerBracket:       []domain.BracketResult{},
		MonthlyTotal:     decimal.Zero,
		FortnightlyTotal: decimal.Zero,
	}

	remaining := base
	for _, bracket := range sorted {
		if !base.GreaterThan(bracket.Min) {
			continue
		}

		taxable := remaining
		if bracket.Max != nil {
			taxable = decimal.Min(remaining, bracket.Max.Sub(bracket.Min))
		}
		tax := taxable.Mul(bracket.Rate)
		remaining = remaining.Sub(taxable)

		result := domain.BracketResult{
			BracketID:     bracket.ID,
			Min:           bracket.Min,
			Max:           bracket.Max,
			Rate:          bracket.Rate,
			TaxableAmount: money.RoundCents(taxable),
			Tax:           money.RoundCents(tax),
		}
		schedule.PerBracket = append(schedule.PerBracket, result)
		schedule.MonthlyTotal = schedule.MonthlyTotal.Add(result.Tax)
	}

	schedule.FortnightlyTotal = money.Half(schedule.MonthlyTotal)
	return schedule
}
