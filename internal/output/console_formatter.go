package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/fintrack/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.LedgerReport) ([]byte, error) {
	var buf bytes.Buffer
	h := AnalyzeReport(report)
	primary := report.PrimaryCurrency

	fmt.Fprintln(&buf, "FINTRACK SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Month: %s (primary currency %s)\n", report.Dashboard.Month.Format("January 2006"), primary)
	fmt.Fprintln(&buf)

	if s := h.CurrentSalary; s != nil {
		fmt.Fprintf(&buf, "Salary %q: Net=%s Fortnightly=%s", s.Label, FormatCurrency(s.NetMonthly, s.Currency), FormatCurrency(s.NetFortnightly, s.Currency))
		if s.ConversionAvailable() {
			fmt.Fprintf(&buf, " (%s)", FormatCurrency(*s.ConvertedNetMonthly, s.ConvertedCurrency))
		}
		fmt.Fprintln(&buf)
	} else {
		fmt.Fprintln(&buf, "Salary: none effective")
	}
	fmt.Fprintf(&buf, "Stocks: %d vesting(s) Net=%s\n", report.StockSummary.Periods, FormatCurrency(h.StockNetUSD, domain.CurrencyUSD))
	fmt.Fprintf(&buf, "Pending this month: %s\n", FormatCurrency(h.PendingThisMonth, primary))

	ytd := FormatCurrency(h.PrimaryYearToDate.Total, primary)
	if !h.PrimaryYearToDate.HasAllRates {
		ytd += " (partial)"
	}
	fmt.Fprintf(&buf, "Year to date: %s\n", ytd)

	if c := h.BiggestChange; c != nil {
		fmt.Fprintf(&buf, "Biggest change: %s %s (%s)\n", c.Currency, FormatCurrency(c.Change, c.Currency), FormatPercentage(c.ChangePercent))
	}
	if b := report.Bonus; b != nil && b.Currency != "" {
		fmt.Fprintf(&buf, "Year-end bonus %d: %s\n", b.Year, FormatCurrency(b.Amount, b.Currency))
	}
	return buf.Bytes(), nil
}
