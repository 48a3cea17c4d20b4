package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardExpenses() []domain.Expense {
	return []domain.Expense{
		{ID: "mar-a", DueDate: date(2025, 3, 5), Amounts: []domain.ExpenseAmount{
			{Currency: "CRC", Amount: dec("1000"), Paid: true},
			{Currency: "USD", Amount: dec("10")},
		}},
		{ID: "mar-b", DueDate: date(2025, 3, 20), Amounts: []domain.ExpenseAmount{
			{Currency: "CRC", Amount: dec("500")},
		}},
		{ID: "feb", DueDate: date(2025, 2, 10), Amounts: []domain.ExpenseAmount{
			{Currency: "CRC", Amount: dec("2000"), Paid: true},
		}},
		{ID: "jan", DueDate: date(2025, 1, 3), Amounts: []domain.ExpenseAmount{
			{Currency: "USD", Amount: dec("40"), Paid: true},
		}},
		{ID: "last-dec", DueDate: date(2024, 12, 15), Amounts: []domain.ExpenseAmount{
			{Currency: "CRC", Amount: dec("999")},
		}},
		{ID: "last-mar", DueDate: date(2024, 3, 15), Amounts: []domain.ExpenseAmount{
			{Currency: "CRC", Amount: dec("7")},
		}},
	}
}

func findComparison(t *testing.T, stats domain.DashboardStats, currency string) domain.MonthComparison {
	t.Helper()
	for _, c := range stats.Comparison {
		if c.Currency == currency {
			return c
		}
	}
	require.FailNow(t, "missing comparison", currency)
	return domain.MonthComparison{}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	rates := domain.ExchangeRateTable{"USD_CRC": dec("500")}

	stats := BuildDashboard(dashboardExpenses(), "crc", rates, now)

	assert.Equal(t, "CRC", stats.PrimaryCurrency)
	assert.Equal(t, date(2025, 3, 1), stats.Month)
	assert.Equal(t, 2025, stats.Year)
	assert.Equal(t, []string{"CRC", "USD"}, stats.Currencies)

	t.Run("current month", func(t *testing.T) {
		assertDecimal(t, "500", stats.PendingThisMonth["CRC"])
		assertDecimal(t, "10", stats.PendingThisMonth["USD"])
		assertDecimal(t, "1500", stats.PaidPending["CRC"].Total)
		assertDecimal(t, "1000", stats.PaidPending["CRC"].Paid)
		assertDecimal(t, "0", stats.PaidPending["USD"].Paid)
	})

	t.Run("month over month", func(t *testing.T) {
		require.Len(t, stats.Comparison, 2)
		assert.Equal(t, "CRC", stats.Comparison[0].Currency)

		crc := findComparison(t, stats, "CRC")
		assertDecimal(t, "1500", crc.Current)
		assertDecimal(t, "2000", crc.Previous)
		assertDecimal(t, "-500", crc.Change)
		assertDecimal(t, "-25", crc.ChangePercent)

		usd := findComparison(t, stats, "USD")
		assertDecimal(t, "10", usd.Change)
		assertDecimal(t, "0", usd.ChangePercent, "no baseline")
	})

	t.Run("trend", func(t *testing.T) {
		crc := stats.MonthlyTrend["CRC"]
		assertDecimal(t, "0", crc[0])
		assertDecimal(t, "2000", crc[1])
		assertDecimal(t, "1500", crc[2])
		for i := 3; i < 12; i++ {
			assertDecimal(t, "0", crc[i], "month ", i+1)
		}

		usd := stats.MonthlyTrend["USD"]
		assertDecimal(t, "40", usd[0])
		assertDecimal(t, "10", usd[2])
	})

	t.Run("year to date", func(t *testing.T) {
		assertDecimal(t, "3500", stats.YearToDate["CRC"].Total)
		assertDecimal(t, "50", stats.YearToDate["USD"].Total)
		assertDecimal(t, "50", stats.YearToDate["USD"].Paid.Add(stats.YearToDate["USD"].Pending))

		assert.Equal(t, "CRC", stats.PrimaryYearToDate.Currency)
		assert.True(t, stats.PrimaryYearToDate.HasAllRates)
		assertDecimal(t, "28500", stats.PrimaryYearToDate.Total)
	})
}

func TestBuildDashboardAcrossYearBoundary(t *testing.T) {
	now := date(2025, 1, 10)

	stats := BuildDashboard(dashboardExpenses(), "CRC", nil, now)

	crc := findComparison(t, stats, "CRC")
	assertDecimal(t, "0", crc.Current)
	assertDecimal(t, "999", crc.Previous)
	assertDecimal(t, "-100", crc.ChangePercent)

	// December belongs to last year's trend
	assertDecimal(t, "0", stats.MonthlyTrend["CRC"][11])
}

func TestBuildDashboardPrimaryNotObserved(t *testing.T) {
	now := date(2025, 3, 15)

	stats := BuildDashboard(dashboardExpenses(), "EUR", nil, now)

	assert.Equal(t, []string{"EUR", "CRC", "USD"}, stats.Currencies)
	assertDecimal(t, "0", stats.PendingThisMonth["EUR"])
	for _, v := range stats.MonthlyTrend["EUR"] {
		assertDecimal(t, "0", v)
	}
	assert.False(t, stats.PrimaryYearToDate.HasAllRates)
	assert.Equal(t, 5, stats.PrimaryYearToDate.Unresolved)
	assertDecimal(t, "0", stats.PrimaryYearToDate.Total)
}

func TestBuildDashboardEmpty(t *testing.T) {
	stats := BuildDashboard(nil, "CRC", nil, date(2025, 6, 1))

	assert.Equal(t, []string{"CRC"}, stats.Currencies)
	assertDecimal(t, "0", stats.Comparison[0].ChangePercent)
	assert.True(t, stats.PrimaryYearToDate.HasAllRates)
}

func TestBuildDashboardIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	rates := domain.ExchangeRateTable{"USD_CRC": dec("500")}
	expenses := dashboardExpenses()

	first := BuildDashboard(expenses, "CRC", rates, now)
	second := BuildDashboard(expenses, "CRC", rates, now)
	assert.Equal(t, first, second)
}
