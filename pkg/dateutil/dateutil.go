package dateutil

import (
	"fmt"
	"time"
)

// BeginningOfMonth returns midnight on the first day of date's month
func BeginningOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}




// PreviousMonth returns the first day of the month before date's month.
// AddDate on the first of the month never overflows into the wrong month.
func PreviousMonth(date time.Time) time.Time {
	return BeginningOfMonth(date).AddDate(0, -1, 0)
}

// SameMonth reports whether a and b fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SameYear reports whether a and b fall in the same calendar year
func SameYear(a, b time.Time) bool {
	return a.Year() == b.Year()
}

// MonthIndex returns the zero-based month slot (January = 0)
func MonthIndex(date time.Time) int {
	return int(date.Month()) - 1
}

// MonthKey formats a date as YYYY-MM
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// ParseMonth parses a YYYY-MM string into the first day of that month (UTC)
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t, nil
}
