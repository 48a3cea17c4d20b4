package calculation

import (
	"testing"

	"github.com/rpgo/fintrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdownStock(t *testing.T) {
	settings := &domain.StocksSettings{
		USTaxPercentage:    dec("0.30"),
		LocalTaxPercentage: dec("0.15"),
		BrokerCostUSD:      dec("10"),
		OtherDeductions: []domain.DeductionRule{
			{ID: "fx", Name: "FX spread", Kind: domain.DeductionPercentage, Rate: dec("0.01"), Active: true},
			{ID: "wire", Name: "Wire fee", Kind: domain.DeductionFixed, Rate: dec("25"), Active: true},
			{ID: "off", Name: "Disabled", Kind: domain.DeductionFixed, Rate: dec("1000"), Active: false},
		},
	}
	period := domain.StockPeriod{ID: "v1", VestingDate: date(2025, 5, 15), Quantity: dec("100"), StockPriceUSD: dec("150")}

	b := BreakdownStock(period, settings)

	assertDecimal(t, "15000", b.Gross)
	assertDecimal(t, "4500", b.USTax)
	assertDecimal(t, "10", b.BrokerCost)
	assertDecimal(t, "1573.5", b.LocalTax) // (15000 - 4500 - 10) * 0.15
	require.Len(t, b.OtherDeductions, 2)
	assertDecimal(t, "150", b.OtherDeductions[0].MonthlyAmount)
	assertDecimal(t, "175", b.OtherDeductionsTotal)
	assertDecimal(t, "6258.5", b.TotalDeductions)
	assertDecimal(t, "8741.5", b.Net)
	assert.False(t, b.Warning)
	assert.Equal(t, "v1", b.PeriodID)
}

func TestBreakdownStockClampsAndWarns(t *testing.T) {
	settings := &domain.StocksSettings{
		USTaxPercentage:    dec("0.6"),
		LocalTaxPercentage: dec("0.5"),
		BrokerCostUSD:      dec("50"),
	}
	period := domain.StockPeriod{ID: "v2", Quantity: dec("10"), StockPriceUSD: dec("10")}

	b := BreakdownStock(period, settings)

	assertDecimal(t, "100", b.Gross)
	assertDecimal(t, "60", b.USTax)
	// local tax base would be -10; it is floored at zero before the rate applies
	assert.True(t, b.LocalTax.IsZero())
	assert.True(t, b.Net.IsZero())
	assert.True(t, b.Warning)
}

func TestBreakdownStockNilSettings(t *testing.T) {
	period := domain.StockPeriod{ID: "v3", Quantity: dec("3"), StockPriceUSD: dec("99.99")}

	b := BreakdownStock(period, nil)

	assertDecimal(t, "299.97", b.Gross)
	assert.True(t, b.USTax.IsZero())
	assert.True(t, b.LocalTax.IsZero())
	assert.True(t, b.BrokerCost.IsZero())
	assert.Empty(t, b.OtherDeductions)
	assertDecimal(t, "299.97", b.Net)
	assert.False(t, b.Warning)
}

func TestBreakdownStockExactlyAtGrossNoWarning(t *testing.T) {
	settings := &domain.StocksSettings{USTaxPercentage: dec("0.5"), BrokerCostUSD: dec("50")}
	b := BreakdownStock(domain.StockPeriod{Quantity: dec("1"), StockPriceUSD: dec("100")}, settings)

	assert.True(t, b.Net.IsZero())
	assert.False(t, b.Warning, "warning only fires when deductions exceed gross")
}

func TestBreakdownStockNetNeverNegative(t *testing.T) {
	settings := &domain.StocksSettings{
		USTaxPercentage:    dec("0.9"),
		LocalTaxPercentage: dec("0.9"),
		BrokerCostUSD:      dec("1000"),
		OtherDeductions:    []domain.DeductionRule{{Kind: domain.DeductionPercentage, Rate: dec("2"), Active: true}},
	}
	for _, qty := range []string{"0", "1", "10", "1000"} {
		b := BreakdownStock(domain.StockPeriod{Quantity: dec(qty), StockPriceUSD: dec("12.5")}, settings)
		assert.False(t, b.Net.IsNegative(), "qty %s", qty)
	}
}

func TestConvertStockNet(t *testing.T) {
	b := domain.StockBreakdown{Net: dec("100.5")}
	assertDecimal(t, "50752.5", *ConvertStockNet(b, decPtr("505")))
	assert.Nil(t, ConvertStockNet(b, nil))
	assert.Nil(t, ConvertStockNet(b, decPtr("0")))
}

func TestSummarizeStocks(t *testing.T) {
	breakdowns := []domain.StockBreakdown{
		{Gross: dec("100"), USTax: dec("30"), BrokerCost: dec("5"), LocalTax: dec("9"), OtherDeductionsTotal: dec("1"), Net: dec("55")},
		{Gross: dec("100"), USTax: dec("60"), BrokerCost: dec("50"), Net: dec("0"), Warning: true},
	}

	sum := SummarizeStocks(breakdowns)

	assert.Equal(t, 2, sum.Periods)
	assertDecimal(t, "200", sum.Gross)
	assertDecimal(t, "90", sum.USTax)
	assertDecimal(t, "55", sum.BrokerCost)
	assertDecimal(t, "9", sum.LocalTax)
	assertDecimal(t, "1", sum.OtherDeductions)
	assertDecimal(t, "55", sum.Net)
	assert.Equal(t, 1, sum.Warnings)

	empty := SummarizeStocks(nil)
	assert.Equal(t, 0, empty.Periods)
	assert.True(t, empty.Net.IsZero())
}

func TestBreakdownStockIdempotent(t *testing.T) {
	settings := &domain.StocksSettings{USTaxPercentage: dec("0.15"), LocalTaxPercentage: dec("0.10"), BrokerCostUSD: dec("10")}
	period := domain.StockPeriod{ID: "v1", VestingDate: date(2025, 2, 15), Quantity: dec("12.5"), StockPriceUSD: dec("101.37")}

	assert.Equal(t, BreakdownStock(period, settings), BreakdownStock(period, settings))
}
