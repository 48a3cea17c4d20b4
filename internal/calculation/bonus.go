package calculation

import (
	"sort"
	"time"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/pkg/money"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// YearEndBonus computes the aguinaldo for year: one twelfth of the gross salary accrued
// from December 1 of the previous year through November 30 of year. Each month uses the
// latest record effective on the first of that month; months before the first record
// accrue nothing. The bonus is paid in the currency of November's record and months paid
// in another currency are skipped.
func YearEndBonus(records []domain.SalaryRecord, year int) domain.BonusBreakdown {
	sorted := make([]domain.SalaryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EffectiveDate.Before(sorted[j].EffectiveDate) })

	start := time.Date(year-1, time.December, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.November, 30, 23, 59, 59, 999999999, time.UTC)

	b := domain.BonusBreakdown{
		Year:         year,
		PeriodStart:  start,
		PeriodEnd:    end,
		Months:       make([]domain.BonusMonth, 0, 12),
		AccruedTotal: decimal.Zero,
		Amount:       decimal.Zero,
	}

	if last, ok := effectiveRecord(sorted, start.AddDate(0, 11, 0)); ok {
		b.Currency = last.Currency
	}

	for i := 0; i < 12; i++ {
		month := start.AddDate(0, i, 0)
		entry := domain.BonusMonth{Month: month, Gross: decimal.Zero}
		if record, ok := effectiveRecord(sorted, month); ok {
			entry.RecordID = record.ID
			if record.Currency != b.Currency {
				entry.Skipped = true
				b.SkippedMonths++
			} else {
				entry.Gross = record.GrossAmount
				b.AccruedTotal = b.AccruedTotal.Add(record.GrossAmount)
			}
		}
		b.Months = append(b.Months, entry)
	}

	b.Amount = money.RoundCents(b.AccruedTotal.Div(twelve))
	return b
}

// effectiveRecord returns the latest record whose effective date is on or before at.
// records must be sorted by effective date ascending.
func effectiveRecord(records []domain.SalaryRecord, at time.Time) (domain.SalaryRecord, bool) {
	idx := sort.Search(len(records), func(i int) bool { return records[i].EffectiveDate.After(at) })
	if idx == 0 {
		return domain.SalaryRecord{}, false
	}
	return records[idx-1], true
}
