package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRateTable maps "FROM_TO" keys to the number of TO units one FROM unit buys.
// A missing key means the rate is unknown, never zero.
type ExchangeRateTable map[string]decimal.Decimal

// RateKey builds the table key for a currency pair
func RateKey(from, to string) string {
	return strings.ToUpper(from) + "_" + strings.ToUpper(to)
}

// Lookup returns the rate for from→to. Non-positive entries count as missing.
func (t ExchangeRateTable) Lookup(from, to string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	rate, ok := t[RateKey(from, to)]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}

// Set stores a rate for from→to
func (t ExchangeRateTable) Set(from, to string, rate decimal.Decimal) {
	t[RateKey(from, to)] = rate
}

// Keys returns the table keys sorted
func (t ExchangeRateTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
