package domain

// Ledger is everything the record source hands the engine in one read: records,
// the settings that go with them, and the latest known exchange rates.
type Ledger struct {
	PrimaryCurrency string            `yaml:"primary_currency" json:"primary_currency"`
	SalarySettings  SalarySettings    `yaml:"salary_settings" json:"salary_settings"`
	Salaries        []SalaryRecord    `yaml:"salaries" json:"salaries"`
	StocksSettings  *StocksSettings   `yaml:"stocks_settings,omitempty" json:"stocks_settings,omitempty"`
	StockPeriods    []StockPeriod     `yaml:"stock_periods" json:"stock_periods"`
	Expenses        []Expense         `yaml:"expenses" json:"expenses"`
	ExchangeRates   ExchangeRateTable `yaml:"exchange_rates" json:"exchange_rates"`
}
