package calculation

import (
	"github.com/rpgo/fintrack/internal/domain"
	"github.com/shopspring/decimal"
)

// SumByCurrency totals every nested amount per currency, splitting paid from pending by
// each amount's own flag. Currencies an expense does not use get no entry from it.
func SumByCurrency(expenses []domain.Expense) map[string]domain.CurrencyTotals {
	totals := make(map[string]domain.CurrencyTotals)
	for _, e := range expenses {
		for _, a := range e.Amounts {
			t, ok := totals[a.Currency]
			if !ok {
				t = domain.CurrencyTotals{Total: decimal.Zero, Paid: decimal.Zero, Pending: decimal.Zero}
			}
			t.Total = t.Total.Add(a.Amount)
			if a.Paid {
				t.Paid = t.Paid.Add(a.Amount)
			} else {
				t.Pending = t.Pending.Add(a.Amount)
			}
			totals[a.Currency] = t
		}
	}
	return totals
}

// Aggregate computes per-currency totals and, for every observed currency, a grand total
// with all other currencies converted into it.
func Aggregate(expenses []domain.Expense, rates domain.ExchangeRateTable) domain.ExpenseTotals {
	perCurrency := SumByCurrency(expenses)
	grand := make(map[string]domain.GrandTotal, len(perCurrency))
	for target := range perCurrency {
		grand[target] = GrandTotalIn(target, expenses, rates)
	}
	return domain.ExpenseTotals{PerCurrency: perCurrency, GrandTotals: grand}
}

// GrandTotalIn converts every amount of every expense into target. Resolution order:
// same currency, the amount's own fixed rate, the rate table. Amounts that cannot be
// resolved are left out and flip HasAllRates to false.
//
// A fixed rate carries no target currency of its own, so it is applied for every target
// other than the amount's currency: a USD amount fixed at 600 adds amount*600 to the EUR
// grand total as well as the CRC one. The record's rate wins even when the table has a
// pair for that target.
func GrandTotalIn(target string, expenses []domain.Expense, rates domain.ExchangeRateTable) domain.GrandTotal {
	gt := domain.GrandTotal{Currency: target, Total: decimal.Zero, HasAllRates: true}
	for _, e := range expenses {
		for _, a := range e.Amounts {
			converted, ok := convertAmount(a, target, rates)
			if !ok {
				gt.HasAllRates = false
				gt.Unresolved++
				continue
			}
			gt.Total = gt.Total.Add(converted)
		}
	}
	return gt
}

func convertAmount(a domain.ExpenseAmount, target string, rates domain.ExchangeRateTable) (decimal.Decimal, bool) {
	if a.Currency == target {
		return a.Amount, true
	}
	// A rate fixed on the record always wins over the shared table
	if a.HasFixedRate() {
		return a.Amount.Mul(*a.ExchangeRate), true
	}
	if rate, ok := rates.Lookup(a.Currency, target); ok {
		return a.Amount.Mul(rate), true
	}
	return decimal.Zero, false
}
