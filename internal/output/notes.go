package output

import (
	"fmt"

	"github.com/rpgo/fintrack/internal/domain"
)

// ReportNotes lists the degradations behind a report's figures: fallback bracket tables,
// missing exchange rates, clamped vesting nets and incomplete grand totals.
func ReportNotes(report *domain.LedgerReport) []string {
	var notes []string
	for _, s := range report.Salaries {
		if s.RentTax.Source == domain.BracketSourceSettings || s.RentTax.Source == domain.BracketSourceDefault {
			notes = append(notes, fmt.Sprintf("Salary %q: rent tax uses the %s bracket table", s.Label, s.RentTax.Source))
		}
		if !s.ConversionAvailable() {
			notes = append(notes, fmt.Sprintf("Salary %q: no exchange rate, %s net unavailable", s.Label, s.ConvertedCurrency))
		}
	}
	for _, st := range report.Stocks {
		if st.Warning {
			notes = append(notes, fmt.Sprintf("Vesting %s: deductions exceed gross, net clamped to zero", st.VestingDate.Format("2006-01-02")))
		}
	}
	for _, c := range report.Expenses.Currencies() {
		if gt := report.Expenses.GrandTotals[c]; !gt.HasAllRates {
			notes = append(notes, fmt.Sprintf("Grand total in %s excludes %d amount(s) without an exchange rate", c, gt.Unresolved))
		}
	}
	if b := report.Bonus; b != nil && b.SkippedMonths > 0 {
		notes = append(notes, fmt.Sprintf("Year-end bonus skips %d month(s) paid in a currency other than %s", b.SkippedMonths, b.Currency))
	}
	return notes
}
