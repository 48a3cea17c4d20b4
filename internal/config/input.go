package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/fintrack/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of ledger files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a ledger from a YAML (or JSON) file, fills in missing ids and
// derived flags, and validates the result.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Ledger, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates ledger data
func (ip *InputParser) Parse(data []byte) (*domain.Ledger, error) {
	var ledger domain.Ledger
	if err := yaml.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.Normalize(&ledger)

	if err := ip.ValidateLedger(&ledger); err != nil {
		return nil, fmt.Errorf("ledger validation failed: %w", err)
	}

	return &ledger, nil
}

// Normalize upper-cases currency codes and rate keys, assigns ids to records written
// without one and re-derives every expense's IsPaid flag.
func (ip *InputParser) Normalize(ledger *domain.Ledger) {
	ledger.PrimaryCurrency = normalizeCurrency(ledger.PrimaryCurrency)

	for i := range ledger.Salaries {
		s := &ledger.Salaries[i]
		s.Currency = normalizeCurrency(s.Currency)
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
	}
	for i := range ledger.StockPeriods {
		if ledger.StockPeriods[i].ID == "" {
			ledger.StockPeriods[i].ID = uuid.NewString()
		}
	}
	for i := range ledger.Expenses {
		e := &ledger.Expenses[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		for j := range e.Amounts {
			e.Amounts[j].Currency = normalizeCurrency(e.Amounts[j].Currency)
		}
		e.SyncPaid()
	}

	if len(ledger.ExchangeRates) > 0 {
		rates := make(domain.ExchangeRateTable, len(ledger.ExchangeRates))
		for k, v := range ledger.ExchangeRates {
			key := strings.TrimSpace(k)
			if from, to, ok := strings.Cut(key, "_"); ok {
				rates.Set(from, to, v)
				continue
			}
			rates[strings.ToUpper(key)] = v
		}
		ledger.ExchangeRates = rates
	}
}

// ValidateLedger performs the form-level checks the calculators rely on
func (ip *InputParser) ValidateLedger(ledger *domain.Ledger) error {
	if ledger == nil {
		return fmt.Errorf("ledger is required")
	}

	if ledger.PrimaryCurrency != "" {
		if err := validateCurrency(ledger.PrimaryCurrency); err != nil {
			return fmt.Errorf("primary currency: %w", err)
		}
	}

	if err := ip.validateSalarySettings(&ledger.SalarySettings); err != nil {
		return fmt.Errorf("salary settings validation failed: %w", err)
	}

	for i, record := range ledger.Salaries {
		if err := ip.validateSalary(&record); err != nil {
			return fmt.Errorf("salary %d validation failed: %w", i, err)
		}
	}

	if ledger.StocksSettings != nil {
		if err := ip.validateStocksSettings(ledger.StocksSettings); err != nil {
			return fmt.Errorf("stocks settings validation failed: %w", err)
		}
	}

	for i, period := range ledger.StockPeriods {
		if err := ip.validateStockPeriod(&period); err != nil {
			return fmt.Errorf("stock period %d validation failed: %w", i, err)
		}
	}

	for i, expense := range ledger.Expenses {
		if err := ip.validateExpense(&expense); err != nil {
			return fmt.Errorf("expense %d (%s) validation failed: %w", i, expense.Name, err)
		}
	}

	for _, key := range ledger.ExchangeRates.Keys() {
		rate := ledger.ExchangeRates[key]
		if err := validateRateKey(key); err != nil {
			return fmt.Errorf("exchange rate %s: %w", key, err)
		}
		if !rate.IsPositive() {
			return fmt.Errorf("exchange rate %s must be positive", key)
		}
	}

	return nil
}

func (ip *InputParser) validateSalarySettings(settings *domain.SalarySettings) error {
	for i, rule := range settings.Deductions {
		if err := validateDeduction(&rule); err != nil {
			return fmt.Errorf("deduction %d: %w", i, err)
		}
	}
	if err := validateBrackets(settings.RentTaxBrackets); err != nil {
		return fmt.Errorf("rent tax brackets: %w", err)
	}
	return nil
}

func (ip *InputParser) validateSalary(record *domain.SalaryRecord) error {
	if record.EffectiveDate.IsZero() {
		return fmt.Errorf("effective date is required")
	}
	if record.GrossAmount.IsNegative() {
		return fmt.Errorf("gross amount cannot be negative")
	}
	if err := validateCurrency(record.Currency); err != nil {
		return err
	}
	for i, rule := range record.Deductions {
		if err := validateDeduction(&rule); err != nil {
			return fmt.Errorf("deduction %d: %w", i, err)
		}
	}
	if err := validateBrackets(record.TaxBrackets); err != nil {
		return fmt.Errorf("tax brackets: %w", err)
	}
	return nil
}

func (ip *InputParser) validateStocksSettings(settings *domain.StocksSettings) error {
	if err := validateFraction("US tax percentage", settings.USTaxPercentage); err != nil {
		return err
	}
	if err := validateFraction("local tax percentage", settings.LocalTaxPercentage); err != nil {
		return err
	}
	if settings.BrokerCostUSD.IsNegative() {
		return fmt.Errorf("broker cost cannot be negative")
	}
	for i, rule := range settings.OtherDeductions {
		if err := validateDeduction(&rule); err != nil {
			return fmt.Errorf("other deduction %d: %w", i, err)
		}
	}
	return nil
}

func (ip *InputParser) validateStockPeriod(period *domain.StockPeriod) error {
	if period.VestingDate.IsZero() {
		return fmt.Errorf("vesting date is required")
	}
	if period.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative")
	}
	if period.StockPriceUSD.IsNegative() {
		return fmt.Errorf("stock price cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateExpense(expense *domain.Expense) error {
	if strings.TrimSpace(expense.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if expense.DueDate.IsZero() {
		return fmt.Errorf("due date is required")
	}
	for i, amount := range expense.Amounts {
		if err := validateCurrency(amount.Currency); err != nil {
			return fmt.Errorf("amount %d: %w", i, err)
		}
		if amount.Amount.IsNegative() {
			return fmt.Errorf("amount %d cannot be negative", i)
		}
		switch amount.ExchangeRateSource {
		case domain.RateSourceNone, domain.RateSourceAPI:
		case domain.RateSourceManual:
			if amount.ExchangeRate == nil {
				return fmt.Errorf("amount %d: manual rate source requires an exchange rate", i)
			}
		default:
			return fmt.Errorf("amount %d: unknown exchange rate source %q", i, amount.ExchangeRateSource)
		}
		if amount.ExchangeRate != nil && !amount.ExchangeRate.IsPositive() {
			return fmt.Errorf("amount %d: exchange rate must be positive", i)
		}
	}
	if expense.IsPaid != expense.AllPaid() {
		return fmt.Errorf("is_paid does not match the paid flags of its amounts")
	}
	return nil
}

func validateDeduction(rule *domain.DeductionRule) error {
	if strings.TrimSpace(rule.Name) == "" {
		return fmt.Errorf("name is required")
	}
	switch rule.Kind {
	case domain.DeductionPercentage:
		return validateFraction(rule.Name+" rate", rule.Rate)
	case domain.DeductionFixed:
		if rule.Rate.IsNegative() {
			return fmt.Errorf("%s amount cannot be negative", rule.Name)
		}
		return nil
	default:
		return fmt.Errorf("unknown deduction kind %q (must be 'percentage' or 'fixed')", rule.Kind)
	}
}

func validateBrackets(brackets []domain.TaxBracket) error {
	unbounded := 0
	for _, b := range brackets {
		if b.Min.IsNegative() {
			return fmt.Errorf("bracket %s: min cannot be negative", b.ID)
		}
		if b.Max == nil {
			unbounded++
		} else if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %s: max must be greater than min", b.ID)
		}
		if err := validateFraction("bracket "+b.ID+" rate", b.Rate); err != nil {
			return err
		}
	}
	if unbounded > 1 {
		return fmt.Errorf("only one bracket may be unbounded, found %d", unbounded)
	}
	return nil
}

func validateFraction(name string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}

func validateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("currency %q must be a 3-letter code", code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("currency %q must be a 3-letter code", code)
		}
	}
	return nil
}

func validateRateKey(key string) error {
	from, to, ok := strings.Cut(key, "_")
	if !ok {
		return fmt.Errorf("key must look like FROM_TO")
	}
	if err := validateCurrency(from); err != nil {
		return err
	}
	return validateCurrency(to)
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// SaveToFile writes the ledger as YAML
func (ip *InputParser) SaveToFile(ledger *domain.Ledger, filename string) error {
	data, err := yaml.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleLedger creates an example ledger anchored on now's month
func (ip *InputParser) CreateExampleLedger(now time.Time) *domain.Ledger {
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	settings := domain.DefaultSalarySettings()

	hire := domain.NewSalaryRecord(settings, "Base salary", month.AddDate(-1, 0, 0), decimal.NewFromInt(1500000), domain.CurrencyCRC)
	raise := domain.NewSalaryRecord(settings, "Annual raise", month.AddDate(0, -2, 0), decimal.NewFromInt(1650000), domain.CurrencyCRC)

	stocks := domain.StocksSettings{
		USTaxPercentage:    decimal.NewFromFloat(0.15),
		LocalTaxPercentage: decimal.NewFromFloat(0.10),
		BrokerCostUSD:      decimal.NewFromInt(10),
		OtherDeductions: []domain.DeductionRule{
			{ID: "wire", Name: "Wire transfer", Kind: domain.DeductionFixed, Rate: decimal.NewFromInt(25), Active: true},
		},
	}

	manual := decimal.NewFromInt(510)

	return &domain.Ledger{
		PrimaryCurrency: domain.CurrencyCRC,
		SalarySettings:  settings,
		Salaries:        []domain.SalaryRecord{hire, raise},
		StocksSettings:  &stocks,
		StockPeriods: []domain.StockPeriod{
			domain.NewStockPeriod(month.AddDate(0, -3, 14), decimal.NewFromInt(25), decimal.NewFromFloat(142.50), "Quarterly vest"),
			domain.NewStockPeriod(month.AddDate(0, 0, 14), decimal.NewFromInt(25), decimal.NewFromFloat(151.20), "Quarterly vest"),
		},
		Expenses: []domain.Expense{
			domain.NewExpense("Rent", month.AddDate(0, 0, 4),
				domain.ExpenseAmount{Currency: domain.CurrencyCRC, Amount: decimal.NewFromInt(450000), Paid: true}),
			domain.NewExpense("Internet", month.AddDate(0, 0, 9),
				domain.ExpenseAmount{Currency: domain.CurrencyCRC, Amount: decimal.NewFromInt(32000)}),
			domain.NewExpense("Streaming", month.AddDate(0, 0, 19),
				domain.ExpenseAmount{Currency: domain.CurrencyUSD, Amount: decimal.NewFromFloat(15.99)}),
			domain.NewExpense("Travel", month.AddDate(0, -1, 11),
				domain.ExpenseAmount{Currency: domain.CurrencyCRC, Amount: decimal.NewFromInt(120000), Paid: true},
				domain.ExpenseAmount{Currency: domain.CurrencyUSD, Amount: decimal.NewFromInt(300), ExchangeRate: &manual, ExchangeRateSource: domain.RateSourceManual, Paid: true}),
		},
		ExchangeRates: domain.ExchangeRateTable{
			"USD_CRC": decimal.NewFromFloat(505.25),
			"CRC_USD": decimal.NewFromFloat(0.00198),
		},
	}
}
