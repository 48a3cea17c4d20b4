package output

import (
	"github.com/rpgo/fintrack/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights condenses a report into the figures summary outputs lead with.
type Highlights struct {
	// CurrentSalary is the latest salary effective at the report time, nil when none is
	CurrentSalary     *domain.SalaryBreakdown
	StockNetUSD       decimal.Decimal
	PendingThisMonth  decimal.Decimal
	PrimaryYearToDate domain.GrandTotal
	// BiggestChange is the comparison with the largest absolute month-over-month change
	BiggestChange *domain.MonthComparison
}

// AnalyzeReport picks the headline figures shown by the summary console and HTML reports.
// BiggestChange is nil when no currency moved month over month.
func AnalyzeReport(report *domain.LedgerReport) Highlights {
	h := Highlights{
		StockNetUSD:       report.StockSummary.Net,
		PendingThisMonth:  report.Dashboard.PendingThisMonth[report.PrimaryCurrency],
		PrimaryYearToDate: report.Dashboard.PrimaryYearToDate,
	}

	for i := range report.Salaries {
		s := &report.Salaries[i]
		if s.EffectiveDate.After(report.GeneratedAt) {
			continue
		}
		if h.CurrentSalary == nil || s.EffectiveDate.After(h.CurrentSalary.EffectiveDate) {
			h.CurrentSalary = s
		}
	}

	for i := range report.Dashboard.Comparison {
		c := &report.Dashboard.Comparison[i]
		if c.Change.IsZero() {
			continue
		}
		if h.BiggestChange == nil || c.Change.Abs().GreaterThan(h.BiggestChange.Change.Abs()) {
			h.BiggestChange = c
		}
	}
	return h
}
