package calculation

import (
	"sort"
	"strings"
	"time"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/pkg/dateutil"
	"github.com/rpgo/fintrack/pkg/money"
	"github.com/shopspring/decimal"
)

// BuildDashboard rolls expenses up for the month containing now: pending and paid for the
// month, month-over-month change per currency, a twelve-month trend and year-to-date
// totals for now's year. Expenses outside those windows are ignored.
func BuildDashboard(expenses []domain.Expense, primaryCurrency string, rates domain.ExchangeRateTable, now time.Time) domain.DashboardStats {
	primary := strings.ToUpper(primaryCurrency)
	month := dateutil.BeginningOfMonth(now)
	previous := dateutil.PreviousMonth(now)

	var current, prior, yearly []domain.Expense
	byMonth := make([][]domain.Expense, 12)
	for _, e := range expenses {
		switch {
		case dateutil.SameMonth(e.DueDate, month):
			current = append(current, e)
		case dateutil.SameMonth(e.DueDate, previous):
			prior = append(prior, e)
		}
		if dateutil.SameYear(e.DueDate, now) {
			yearly = append(yearly, e)
			idx := dateutil.MonthIndex(e.DueDate)
			byMonth[idx] = append(byMonth[idx], e)
		}
	}

	currentTotals := SumByCurrency(current)
	priorTotals := SumByCurrency(prior)
	yearTotals := SumByCurrency(yearly)

	currencies := dashboardCurrencies(primary, currentTotals, priorTotals, yearTotals)

	stats := domain.DashboardStats{
		Month:             month,
		Year:              now.Year(),
		PrimaryCurrency:   primary,
		Currencies:        currencies,
		PendingThisMonth:  make(map[string]decimal.Decimal, len(currencies)),
		PaidPending:       make(map[string]domain.CurrencyTotals, len(currencies)),
		Comparison:        make([]domain.MonthComparison, 0, len(currencies)),
		MonthlyTrend:      make(map[string]domain.MonthlyTrend, len(currencies)),
		YearToDate:        make(map[string]domain.CurrencyTotals, len(currencies)),
		PrimaryYearToDate: GrandTotalIn(primary, yearly, rates),
	}

	monthly := make([]map[string]domain.CurrencyTotals, 12)
	for i := range byMonth {
		monthly[i] = SumByCurrency(byMonth[i])
	}

	for _, c := range currencies {
		cur := totalsOrZero(currentTotals, c)
		prev := totalsOrZero(priorTotals, c)

		stats.PendingThisMonth[c] = cur.Pending
		stats.PaidPending[c] = cur
		stats.YearToDate[c] = totalsOrZero(yearTotals, c)
		stats.Comparison = append(stats.Comparison, domain.MonthComparison{
			Currency:      c,
			Current:       cur.Total,
			Previous:      prev.Total,
			Change:        cur.Total.Sub(prev.Total),
			ChangePercent: money.PercentChange(prev.Total, cur.Total),
		})

		var trend domain.MonthlyTrend
		for i := range trend {
			trend[i] = totalsOrZero(monthly[i], c).Total
		}
		stats.MonthlyTrend[c] = trend
	}

	return stats
}

func totalsOrZero(m map[string]domain.CurrencyTotals, currency string) domain.CurrencyTotals {
	if t, ok := m[currency]; ok {
		return t
	}
	return domain.CurrencyTotals{Total: decimal.Zero, Paid: decimal.Zero, Pending: decimal.Zero}
}

// dashboardCurrencies lists the primary currency first, then every other observed currency alphabetically
func dashboardCurrencies(primary string, sets ...map[string]domain.CurrencyTotals) []string {
	seen := map[string]bool{}
	var others []string
	for _, set := range sets {
		for c := range set {
			if c == primary || seen[c] {
				continue
			}
			seen[c] = true
			others = append(others, c)
		}
	}
	sort.Strings(others)
	if primary == "" {
		return others
	}
	return append([]string{primary}, others...)
}
