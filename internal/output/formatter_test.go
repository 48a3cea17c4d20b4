package output

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/fintrack/internal/calculation"
	"github.com/rpgo/fintrack/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestReport(t *testing.T) *domain.LedgerReport {
	t.Helper()
	manual := d("600")
	ledger := &domain.Ledger{
		PrimaryCurrency: "CRC",
		SalarySettings:  domain.DefaultSalarySettings(),
		Salaries: []domain.SalaryRecord{{
			ID:            "s1",
			Label:         "Base salary",
			EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			GrossAmount:   d("1500000"),
			Currency:      "CRC",
			Deductions:    domain.DefaultDeductions(),
			TaxBrackets:   domain.DefaultRentTaxBrackets(),
		}},
		StocksSettings: &domain.StocksSettings{USTaxPercentage: d("0.15"), LocalTaxPercentage: d("0.10"), BrokerCostUSD: d("10")},
		StockPeriods: []domain.StockPeriod{
			{ID: "v1", VestingDate: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), Quantity: d("10"), StockPriceUSD: d("100")},
		},
		Expenses: []domain.Expense{
			{ID: "e1", Name: "Rent", DueDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Amounts: []domain.ExpenseAmount{
				{Currency: "CRC", Amount: d("10000"), Paid: true},
				{Currency: "USD", Amount: d("20")},
			}},
			{ID: "e2", Name: "Software", DueDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Amounts: []domain.ExpenseAmount{
				{Currency: "USD", Amount: d("30"), ExchangeRate: &manual, ExchangeRateSource: domain.RateSourceManual, Paid: true},
			}},
			{ID: "e3", Name: "Books", DueDate: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), Amounts: []domain.ExpenseAmount{
				{Currency: "EUR", Amount: d("5")},
			}},
		},
		ExchangeRates: domain.ExchangeRateTable{"USD_CRC": d("500"), "CRC_USD": d("0.002")},
	}
	report, err := calculation.NewCalculationEngine().Run(context.Background(), ledger, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("engine run: %v", err)
	}
	return report
}

func TestConsoleLiteFormatter(t *testing.T) {
	f := ConsoleFormatter{}
	out, err := f.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"FINTRACK SUMMARY",
		"Month: March 2025 (primary currency CRC)",
		`Salary "Base salary": Net=₡1,271,700.00 Fortnightly=₡635,850.00 ($2,543.40)`,
		"Stocks: 1 vesting(s) Net=$756.00",
		"Pending this month: ₡0.00",
		"Year-end bonus 2025:",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in console-lite output, got:\n%s", want, content)
		}
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	f := ConsoleVerboseFormatter{}
	out, err := f.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"FINTRACK LEDGER REPORT", "SALARIES", "STOCK VESTING (USD)", "EXPENSES", "DASHBOARD MARCH 2025", "YEAR-END BONUS 2025", "NOTES", "Grand total in EUR excludes 2 amount(s)"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in verbose output, got:\n%s", want, truncate(content, 400))
		}
	}
}

func TestConsoleVerboseEmptyReport(t *testing.T) {
	report, err := calculation.NewCalculationEngine().Run(context.Background(), &domain.Ledger{}, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("engine run: %v", err)
	}
	out, err := ConsoleVerboseFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "No salary records.") || !strings.Contains(content, "No expenses.") {
		t.Fatalf("expected empty-section placeholders, got:\n%s", content)
	}
	if strings.Contains(content, "NOTES") {
		t.Fatalf("empty report should have no notes")
	}
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	f := CSVSummarizer{}
	out, err := f.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	// header + 1 salary + 1 stock + 3 currencies
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d: %v", len(lines), lines)
	}
	if want := "salary,Base salary,2025-01-01,CRC,1500000.00,228300.00,1271700.00,USD,2543.40,record"; lines[1] != want {
		t.Fatalf("salary row = %q, want %q", lines[1], want)
	}
	if !strings.HasPrefix(lines[2], "stock,v1,2025-02-15,USD,1000.00,244.00,756.00") {
		t.Fatalf("unexpected stock row: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "expenses,total,,CRC,") || !strings.HasPrefix(lines[4], "expenses,total,,EUR,") || !strings.HasPrefix(lines[5], "expenses,total,,USD,") {
		t.Fatalf("expense rows not sorted by currency: %v", lines[3:])
	}
	if !strings.HasSuffix(lines[3], ",partial") {
		t.Fatalf("CRC grand total should be flagged partial: %q", lines[3])
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"salary,s1,CCSS,percentage,0.1083,1500000.00,162450.00,81225.00,CRC",
		"salary,s1,rent tax 10,bracket,0.1,429000.00,42900.00,,CRC",
		"salary,s1,net,,,,1271700.00,635850.00,CRC",
		"stock,v1,local tax,,,,84.00,,USD",
		"bonus,,amount,2025,",
		"bonus,,2024-12,,,,0.00,,CRC",
		"bonus,s1,2025-01,,,,1500000.00,,CRC",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in detailed csv, got:\n%s", want, content)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["primary_currency"] != "CRC" {
		t.Fatalf("primary_currency = %v", decoded["primary_currency"])
	}
	salaries, ok := decoded["salaries"].([]any)
	if !ok || len(salaries) != 1 {
		t.Fatalf("expected one salary, got %v", decoded["salaries"])
	}
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	if !strings.HasPrefix(content, "<!DOCTYPE html>") {
		t.Fatalf("unexpected html prefix: %q", firstLine(content))
	}
	for _, want := range []string{"<h1>Fintrack report</h1>", "₡1,271,700.00", "Year-end bonus 2025", "const monthlyTrend ="} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML", want)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func TestFormatterAliasResolution(t *testing.T) {
	cases := map[string]string{
		"console-verbose": "console",
		"Lite":            "console-lite",
		" csv-detailed ":  "detailed-csv",
		"json":            "json",
	}
	for alias, want := range cases {
		f := GetFormatterByName(alias)
		if f == nil {
			t.Fatalf("alias %q did not resolve to a formatter", alias)
		}
		if f.Name() != want {
			t.Fatalf("alias %q resolved to %q, want %q", alias, f.Name(), want)
		}
	}
	if GetFormatterByName("pdf") != nil {
		t.Fatalf("pdf should not resolve")
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := GenerateReport(buildTestReport(t), "definitely-not-a-format", t.TempDir())
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}

	if _, err := Render(buildTestReport(t), "pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Render should fail with ErrUnsupportedFormat, got %v", err)
	}
}

func TestGenerateReportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	report := buildTestReport(t)

	paths, err := GenerateReport(report, "csv-summary", dir)
	if err != nil {
		t.Fatalf("GenerateReport csv error: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "fintrack_report_20250315_000000.csv" {
		t.Fatalf("unexpected paths: %v", paths)
	}
	if _, err := os.Stat(paths[0]); err != nil {
		t.Fatalf("report not written: %v", err)
	}

	paths, err = GenerateReport(report, "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport all error: %v", err)
	}
	if len(paths) != 2 || filepath.Ext(paths[0]) != ".txt" || filepath.Ext(paths[1]) != ".csv" {
		t.Fatalf("unexpected paths for all: %v", paths)
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{"console": "txt", "console-lite": "txt", "csv": "csv", "detailed-csv": "csv", "html": "html", "json-pretty": "json"}
	for name, want := range cases {
		if got := FileExtension(name); got != want {
			t.Errorf("FileExtension(%q) = %q, want %q", name, got, want)
		}
	}
}
