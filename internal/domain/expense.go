package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RateSource records where an ExpenseAmount's exchange rate came from
type RateSource string

const (
	RateSourceNone   RateSource = ""
	RateSourceAPI    RateSource = "api"
	RateSourceManual RateSource = "manual"
)

// ExpenseAmount is one currency component of an expense
type ExpenseAmount struct {
	Currency           string           `yaml:"currency" json:"currency"`
	Amount             decimal.Decimal  `yaml:"amount" json:"amount"`
	ExchangeRate       *decimal.Decimal `yaml:"exchange_rate,omitempty" json:"exchange_rate"`
	ExchangeRateSource RateSource       `yaml:"exchange_rate_source,omitempty" json:"exchange_rate_source,omitempty"`
	Paid               bool             `yaml:"paid" json:"paid"`
}

// HasFixedRate reports whether the amount carries its own usable conversion rate
func (a ExpenseAmount) HasFixedRate() bool {
	return a.ExchangeRate != nil && a.ExchangeRate.IsPositive()
}

// UnmarshalYAML implements custom YAML unmarshaling for ExpenseAmount
func (a *ExpenseAmount) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Currency           string          `yaml:"currency"`
		Amount             decimal.Decimal `yaml:"amount"`
		ExchangeRate       *string         `yaml:"exchange_rate,omitempty"`
		ExchangeRateSource string          `yaml:"exchange_rate_source,omitempty"`
		Paid               bool            `yaml:"paid"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	a.Currency = strings.ToUpper(strings.TrimSpace(aux.Currency))
	a.Amount = aux.Amount
	a.ExchangeRateSource = RateSource(aux.ExchangeRateSource)
	a.Paid = aux.Paid
	a.ExchangeRate = nil

	if aux.ExchangeRate != nil && strings.TrimSpace(*aux.ExchangeRate) != "" {
		val, err := decimal.NewFromString(strings.TrimSpace(*aux.ExchangeRate))
		if err != nil {
			return err
		}
		a.ExchangeRate = &val
		// A rate typed into the ledger by hand is a manual rate unless stated otherwise
		if a.ExchangeRateSource == RateSourceNone {
			a.ExchangeRateSource = RateSourceManual
		}
	}

	return nil
}

// Expense is a bill or purchase that may be split across several currencies
type Expense struct {
	ID      string          `yaml:"id" json:"id"`
	Name    string          `yaml:"name" json:"name"`
	DueDate time.Time       `yaml:"due_date" json:"due_date"`
	Amounts []ExpenseAmount `yaml:"amounts" json:"amounts"`
	IsPaid  bool            `yaml:"is_paid" json:"is_paid"`
}

// NewExpense creates an expense with a fresh ID and a consistent IsPaid flag
func NewExpense(name string, due time.Time, amounts ...ExpenseAmount) Expense {
	e := Expense{ID: uuid.NewString(), Name: name, DueDate: due, Amounts: amounts}
	e.SyncPaid()
	return e
}

// AllPaid reports whether every nested amount is paid. An expense without amounts is not paid.
func (e Expense) AllPaid() bool {
	if len(e.Amounts) == 0 {
		return false
	}
	for _, a := range e.Amounts {
		if !a.Paid {
			return false
		}
	}
	return true
}

// SyncPaid re-derives IsPaid from the nested flags. Writers call this after editing amounts.
func (e *Expense) SyncPaid() {
	e.IsPaid = e.AllPaid()
}
