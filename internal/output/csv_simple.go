package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/fintrack/internal/domain"
)

// CSVSummarizer implements the summary CSV output: one row per salary, vesting event and
// expense currency, sharing a Gross/Deductions/Net column layout.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.LedgerReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Section", "Item", "Date", "Currency", "Gross", "Deductions", "Net", "ConvertedCurrency", "ConvertedNet", "Flag"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.Salaries {
		row := []string{
			"salary",
			s.Label,
			s.EffectiveDate.Format("2006-01-02"),
			s.Currency,
			s.GrossMonthly.StringFixed(2),
			s.TotalDeductions.StringFixed(2),
			s.NetMonthly.StringFixed(2),
			s.ConvertedCurrency,
			optionalFixed(s.ConvertedNetMonthly),
			string(s.RentTax.Source),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, s := range report.Stocks {
		flag := ""
		if s.Warning {
			flag = "clamped"
		}
		row := []string{
			"stock",
			s.PeriodID,
			s.VestingDate.Format("2006-01-02"),
			domain.CurrencyUSD,
			s.Gross.StringFixed(2),
			s.TotalDeductions.StringFixed(2),
			s.Net.StringFixed(2),
			"",
			"",
			flag,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, cur := range report.Expenses.Currencies() {
		t := report.Expenses.PerCurrency[cur]
		gt := report.Expenses.GrandTotals[cur]
		flag := ""
		if !gt.HasAllRates {
			flag = "partial"
		}
		row := []string{
			"expenses",
			"total",
			"",
			cur,
			t.Total.StringFixed(2),
			t.Paid.StringFixed(2),
			t.Pending.StringFixed(2),
			cur,
			gt.Total.StringFixed(2),
			flag,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
