package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExpensePaidFlags(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	e := NewExpense("Rent", due,
		ExpenseAmount{Currency: "CRC", Amount: decimal.NewFromInt(300000), Paid: true},
		ExpenseAmount{Currency: "USD", Amount: decimal.NewFromInt(100), Paid: false},
	)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.IsPaid)

	e.Amounts[1].Paid = true
	e.SyncPaid()
	assert.True(t, e.IsPaid)

	empty := NewExpense("Nothing", due)
	assert.False(t, empty.IsPaid)
}

func TestExpenseAmountUnmarshalYAML(t *testing.T) {
	doc := `
- currency: usd
  amount: 25.50
  exchange_rate: "505.25"
  paid: true
- currency: CRC
  amount: 1000
- currency: EUR
  amount: 10
  exchange_rate: 590
  exchange_rate_source: api
`
	var amounts []ExpenseAmount
	require.NoError(t, yaml.Unmarshal([]byte(doc), &amounts))
	require.Len(t, amounts, 3)

	assert.Equal(t, "USD", amounts[0].Currency)
	assert.True(t, amounts[0].Amount.Equal(decimal.RequireFromString("25.5")))
	require.NotNil(t, amounts[0].ExchangeRate)
	assert.True(t, amounts[0].ExchangeRate.Equal(decimal.RequireFromString("505.25")))
	assert.Equal(t, RateSourceManual, amounts[0].ExchangeRateSource)
	assert.True(t, amounts[0].Paid)
	assert.True(t, amounts[0].HasFixedRate())

	assert.Nil(t, amounts[1].ExchangeRate)
	assert.Equal(t, RateSourceNone, amounts[1].ExchangeRateSource)
	assert.False(t, amounts[1].HasFixedRate())

	assert.Equal(t, RateSourceAPI, amounts[2].ExchangeRateSource)
}

func TestExpenseAmountUnmarshalYAMLInvalidRate(t *testing.T) {
	var a ExpenseAmount
	err := yaml.Unmarshal([]byte("currency: USD\namount: 1\nexchange_rate: abc\n"), &a)
	assert.Error(t, err)
}

func TestHasFixedRateRejectsZero(t *testing.T) {
	zero := decimal.Zero
	a := ExpenseAmount{Currency: "USD", Amount: decimal.NewFromInt(1), ExchangeRate: &zero}
	assert.False(t, a.HasFixedRate())
}
