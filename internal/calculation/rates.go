package calculation

import (
	"context"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/shopspring/decimal"
)

// RateSource resolves the rate for one unit of from expressed in to.
// ok is false when the rate is unknown; that is not an error.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (rate decimal.Decimal, ok bool, err error)
}

// TableRateSource serves rates from a precomputed ExchangeRateTable
type TableRateSource struct {
	Table domain.ExchangeRateTable
}

// NewTableRateSource creates a rate source over table
func NewTableRateSource(table domain.ExchangeRateTable) *TableRateSource {
	return &TableRateSource{Table: table}
}

func (t *TableRateSource) Rate(ctx context.Context, from, to string) (decimal.Decimal, bool, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, false, err
	}
	if from == to {
		return decimal.NewFromInt(1), true, nil
	}
	rate, ok := t.Table.Lookup(from, to)
	return rate, ok, nil
}
