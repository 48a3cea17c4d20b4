package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockPeriod is one vesting event
type StockPeriod struct {
	ID            string          `yaml:"id" json:"id"`
	VestingDate   time.Time       `yaml:"vesting_date" json:"vesting_date"`
	Quantity      decimal.Decimal `yaml:"quantity" json:"quantity"`
	StockPriceUSD decimal.Decimal `yaml:"stock_price_usd" json:"stock_price_usd"`
	Notes         string          `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// NewStockPeriod creates a vesting event with a fresh ID
func NewStockPeriod(vesting time.Time, quantity, priceUSD decimal.Decimal, notes string) StockPeriod {
	return StockPeriod{
		ID:            uuid.NewString(),
		VestingDate:   vesting,
		Quantity:      quantity,
		StockPriceUSD: priceUSD,
		Notes:         notes,
	}
}

// StocksSettings is the global vesting tax policy. Unlike salary deductions it is applied
// to every period at read time; periods carry no snapshot.
type StocksSettings struct {
	USTaxPercentage    decimal.Decimal `yaml:"us_tax_percentage" json:"us_tax_percentage"`
	LocalTaxPercentage decimal.Decimal `yaml:"local_tax_percentage" json:"local_tax_percentage"`
	BrokerCostUSD      decimal.Decimal `yaml:"broker_cost_usd" json:"broker_cost_usd"`
	OtherDeductions    []DeductionRule `yaml:"other_deductions" json:"other_deductions"`
}

// DefaultStocksSettings is the all-zero policy used when no settings exist
func DefaultStocksSettings() StocksSettings {
	return StocksSettings{
		USTaxPercentage:    decimal.Zero,
		LocalTaxPercentage: decimal.Zero,
		BrokerCostUSD:      decimal.Zero,
	}
}
