package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/rpgo/fintrack/pkg/dateutil"
)

// CSVDetailedExporter provides one row per computed line: every deduction and bracket of
// every salary, every component of every vesting event.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.LedgerReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Section", "RecordID", "Line", "Kind", "Rate", "Base", "Monthly", "Fortnightly", "Currency"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	write := func(row ...string) error { return w.Write(row) }

	for _, s := range report.Salaries {
		if err := write("salary", s.RecordID, "gross", "", "", "", s.GrossMonthly.StringFixed(2), s.GrossFortnightly.StringFixed(2), s.Currency); err != nil {
			return nil, err
		}
		for _, d := range s.Deductions {
			if err := write("salary", s.RecordID, d.Name, string(d.Kind), d.Rate.String(), s.GrossMonthly.StringFixed(2), d.MonthlyAmount.StringFixed(2), d.FortnightlyAmount.StringFixed(2), s.Currency); err != nil {
				return nil, err
			}
		}
		for _, b := range s.RentTax.PerBracket {
			if err := write("salary", s.RecordID, "rent tax "+b.BracketID, "bracket", b.Rate.String(), b.TaxableAmount.StringFixed(2), b.Tax.StringFixed(2), "", s.Currency); err != nil {
				return nil, err
			}
		}
		if err := write("salary", s.RecordID, "net", "", "", "", s.NetMonthly.StringFixed(2), s.NetFortnightly.StringFixed(2), s.Currency); err != nil {
			return nil, err
		}
	}

	for _, s := range report.Stocks {
		usd := domain.CurrencyUSD
		lines := [][2]string{
			{"gross", s.Gross.StringFixed(2)},
			{"us tax", s.USTax.StringFixed(2)},
			{"broker", s.BrokerCost.StringFixed(2)},
			{"local tax", s.LocalTax.StringFixed(2)},
		}
		for _, l := range lines {
			if err := write("stock", s.PeriodID, l[0], "", "", "", l[1], "", usd); err != nil {
				return nil, err
			}
		}
		for _, d := range s.OtherDeductions {
			if err := write("stock", s.PeriodID, d.Name, string(d.Kind), d.Rate.String(), s.Gross.StringFixed(2), d.MonthlyAmount.StringFixed(2), "", usd); err != nil {
				return nil, err
			}
		}
		if err := write("stock", s.PeriodID, "net", boolToString(s.Warning), "", "", s.Net.StringFixed(2), "", usd); err != nil {
			return nil, err
		}
	}

	if b := report.Bonus; b != nil {
		for _, m := range b.Months {
			kind := ""
			if m.Skipped {
				kind = "skipped"
			}
			if err := write("bonus", m.RecordID, dateutil.MonthKey(m.Month), kind, "", "", m.Gross.StringFixed(2), "", b.Currency); err != nil {
				return nil, err
			}
		}
		if err := write("bonus", "", "amount", intToString(b.Year), "", b.AccruedTotal.StringFixed(2), b.Amount.StringFixed(2), "", b.Currency); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
