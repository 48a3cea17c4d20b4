package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/pkg/dateutil"
)

// ConsoleVerboseFormatter renders every section of the report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.LedgerReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "FINTRACK LEDGER REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintf(&buf, "Generated: %s   Primary currency: %s\n", report.GeneratedAt.Format(time.RFC3339), report.PrimaryCurrency)
	fmt.Fprintln(&buf)

	WriteSalaries(&buf, report.Salaries)
	WriteStocks(&buf, report.Stocks, report.StockSummary)
	WriteExpenses(&buf, report.Expenses)
	WriteDashboard(&buf, report.Dashboard)
	if report.Bonus != nil {
		WriteBonus(&buf, *report.Bonus)
	}
	WriteNotes(&buf, ReportNotes(report))

	return buf.Bytes(), nil
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

// WriteSalaries renders one block per salary breakdown
func WriteSalaries(w io.Writer, salaries []domain.SalaryBreakdown) {
	section(w, "SALARIES")
	if len(salaries) == 0 {
		fmt.Fprintln(w, "No salary records.")
		fmt.Fprintln(w)
		return
	}
	for _, s := range salaries {
		fmt.Fprintf(w, "%s (effective %s, %s)\n", s.Label, s.EffectiveDate.Format("2006-01-02"), s.Currency)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "\tMonthly\tFortnightly\t")
		fmt.Fprintf(tw, "Gross\t%s\t%s\t\n", FormatCurrency(s.GrossMonthly, s.Currency), FormatCurrency(s.GrossFortnightly, s.Currency))
		for _, d := range s.Deductions {
			label := d.Name
			if d.Kind == domain.DeductionPercentage {
				label = fmt.Sprintf("%s (%s)", d.Name, FormatRate(d.Rate))
			}
			fmt.Fprintf(tw, "%s\t-%s\t-%s\t\n", label, FormatCurrency(d.MonthlyAmount, s.Currency), FormatCurrency(d.FortnightlyAmount, s.Currency))
		}
		if s.RentTax.AppliedToCRC {
			for _, b := range s.RentTax.PerBracket {
				fmt.Fprintf(tw, "Rent tax %s on %s\t-%s\t\t\n", FormatRate(b.Rate), FormatCurrency(b.TaxableAmount, s.Currency), FormatCurrency(b.Tax, s.Currency))
			}
			fmt.Fprintf(tw, "Rent tax\t-%s\t-%s\t\n", FormatCurrency(s.RentTax.MonthlyTotal, s.Currency), FormatCurrency(s.RentTax.FortnightlyTotal, s.Currency))
		}
		fmt.Fprintf(tw, "Net\t%s\t%s\t\n", FormatCurrency(s.NetMonthly, s.Currency), FormatCurrency(s.NetFortnightly, s.Currency))
		fmt.Fprintf(tw, "Net in %s\t%s\t%s\t\n", s.ConvertedCurrency,
			FormatOptionalCurrency(s.ConvertedNetMonthly, s.ConvertedCurrency),
			FormatOptionalCurrency(s.ConvertedNetFortnightly, s.ConvertedCurrency))
		tw.Flush()
		fmt.Fprintln(w)
	}
}

// WriteStocks renders the vesting breakdowns and their summary, all in USD
func WriteStocks(w io.Writer, stocks []domain.StockBreakdown, summary domain.StockSummary) {
	section(w, "STOCK VESTING (USD)")
	if len(stocks) == 0 {
		fmt.Fprintln(w, "No vesting events.")
		fmt.Fprintln(w)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Vesting\tQty\tGross\tUS tax\tBroker\tLocal tax\tOther\tNet\t")
	for _, s := range stocks {
		net := FormatCurrency(s.Net, domain.CurrencyUSD)
		if s.Warning {
			net += " !"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			s.VestingDate.Format("2006-01-02"),
			s.Quantity.String(),
			FormatCurrency(s.Gross, domain.CurrencyUSD),
			FormatCurrency(s.USTax, domain.CurrencyUSD),
			FormatCurrency(s.BrokerCost, domain.CurrencyUSD),
			FormatCurrency(s.LocalTax, domain.CurrencyUSD),
			FormatCurrency(s.OtherDeductionsTotal, domain.CurrencyUSD),
			net,
		)
	}
	fmt.Fprintf(tw, "Total\t\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
		FormatCurrency(summary.Gross, domain.CurrencyUSD),
		FormatCurrency(summary.USTax, domain.CurrencyUSD),
		FormatCurrency(summary.BrokerCost, domain.CurrencyUSD),
		FormatCurrency(summary.LocalTax, domain.CurrencyUSD),
		FormatCurrency(summary.OtherDeductions, domain.CurrencyUSD),
		FormatCurrency(summary.Net, domain.CurrencyUSD),
	)
	tw.Flush()
	fmt.Fprintln(w)
}

// WriteExpenses renders per-currency totals and the grand total in every observed currency
func WriteExpenses(w io.Writer, totals domain.ExpenseTotals) {
	section(w, "EXPENSES")
	currencies := totals.Currencies()
	if len(currencies) == 0 {
		fmt.Fprintln(w, "No expenses.")
		fmt.Fprintln(w)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Currency\tTotal\tPaid\tPending\tGrand total\t")
	for _, c := range currencies {
		t := totals.PerCurrency[c]
		gt := totals.GrandTotals[c]
		grand := FormatCurrency(gt.Total, c)
		if !gt.HasAllRates {
			grand += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", c, FormatCurrency(t.Total, c), FormatCurrency(t.Paid, c), FormatCurrency(t.Pending, c), grand)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// WriteDashboard renders the month, month-over-month comparison, trend and year to date
func WriteDashboard(w io.Writer, stats domain.DashboardStats) {
	section(w, "DASHBOARD "+strings.ToUpper(stats.Month.Format("January 2006")))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Currency\tPaid\tPending\tPrevious\tChange\t%\t")
	for _, cmp := range stats.Comparison {
		pp := stats.PaidPending[cmp.Currency]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			cmp.Currency,
			FormatCurrency(pp.Paid, cmp.Currency),
			FormatCurrency(pp.Pending, cmp.Currency),
			FormatCurrency(cmp.Previous, cmp.Currency),
			FormatCurrency(cmp.Change, cmp.Currency),
			FormatPercentage(cmp.ChangePercent),
		)
	}
	tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Monthly trend %d\n", stats.Year)
	tw = tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	header := []string{""}
	for m := time.January; m <= time.December; m++ {
		header = append(header, m.String()[:3])
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, c := range stats.Currencies {
		trend := stats.MonthlyTrend[c]
		row := []string{c}
		for _, v := range trend {
			row = append(row, v.StringFixed(0))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Year to date")
	for _, c := range stats.Currencies {
		fmt.Fprintf(w, "  %s: %s\n", c, FormatCurrency(stats.YearToDate[c].Total, c))
	}
	ytd := stats.PrimaryYearToDate
	line := fmt.Sprintf("  All in %s: %s", ytd.Currency, FormatCurrency(ytd.Total, ytd.Currency))
	if !ytd.HasAllRates {
		line += fmt.Sprintf(" (%d amount(s) without a rate excluded)", ytd.Unresolved)
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
}

// WriteBonus renders the year-end bonus with its accrual months
func WriteBonus(w io.Writer, b domain.BonusBreakdown) {
	section(w, fmt.Sprintf("YEAR-END BONUS %d", b.Year))
	if b.Currency == "" {
		fmt.Fprintln(w, "No salary in the accrual period.")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "Accrual: %s to %s\n", b.PeriodStart.Format("2006-01-02"), b.PeriodEnd.Format("2006-01-02"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, m := range b.Months {
		gross := FormatCurrency(m.Gross, b.Currency)
		if m.Skipped {
			gross = "skipped"
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", dateutil.MonthKey(m.Month), gross)
	}
	tw.Flush()
	fmt.Fprintf(w, "Accrued: %s\n", FormatCurrency(b.AccruedTotal, b.Currency))
	fmt.Fprintf(w, "Bonus:   %s\n", FormatCurrency(b.Amount, b.Currency))
	fmt.Fprintln(w)
}

// WriteNotes renders report notes, if any
func WriteNotes(w io.Writer, notes []string) {
	if len(notes) == 0 {
		return
	}
	section(w, "NOTES")
	for _, n := range notes {
		fmt.Fprintf(w, "• %s\n", n)
	}
	fmt.Fprintln(w)
}
