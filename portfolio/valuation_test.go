package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crypto-tracker/models"
)

func quotes(prices map[string]float64) models.CryptoPriceMap {
	m := make(models.CryptoPriceMap, len(prices))
	for symbol, price := range prices {
		m[symbol] = models.CryptoPrice{Symbol: symbol, CurrentPrice: price}
	}
	return m
}

func TestValuateSingleHolding(t *testing.T) {
	t.Parallel()

	holdings := []models.Holding{
		{Symbol: "BTC", Amount: 2, AvgBuyPrice: 100},
	}

	v := Valuate(0, holdings, quotes(map[string]float64{"BTC": 150}))

	assert.Len(t, v.Holdings, 1)
	h := v.Holdings[0]
	assert.Equal(t, 300.0, h.Value)
	assert.Equal(t, 100.0, h.ProfitLoss)
	assert.Equal(t, 50.0, h.ProfitLossPercentage)
	assert.Equal(t, 150.0, h.CurrentPrice)

	assert.Equal(t, 300.0, v.TotalValue)
	assert.Equal(t, 200.0, v.TotalInvested)
	assert.Equal(t, 100.0, v.TotalProfitLoss)
	assert.Equal(t, 50.0, v.ProfitLossPercentage)
}

func TestValuateBalanceCountsTowardsTotals(t *testing.T) {
	t.Parallel()

	holdings := []models.Holding{
		{Symbol: "ETH", Amount: 1, AvgBuyPrice: 3000},
	}

	v := Valuate(5500, holdings, quotes(map[string]float64{"ETH": 3100}))

	assert.Equal(t, 8600.0, v.TotalValue)
	assert.Equal(t, 8500.0, v.TotalInvested)
	assert.Equal(t, 100.0, v.TotalProfitLoss)
}

func TestValuateMissingQuote(t *testing.T) {
	t.Parallel()

	holdings := []models.Holding{
		{Symbol: "XMR", Amount: 10, AvgBuyPrice: 150},
	}

	// A held symbol absent from the quote map is valued at zero, not
	// dropped: the full invested amount shows up as a loss.
	v := Valuate(0, holdings, quotes(nil))

	assert.Len(t, v.Holdings, 1)
	h := v.Holdings[0]
	assert.Equal(t, 0.0, h.CurrentPrice)
	assert.Equal(t, 0.0, h.Value)
	assert.Equal(t, -1500.0, h.ProfitLoss)
	assert.Equal(t, -100.0, h.ProfitLossPercentage)
	assert.Equal(t, -1500.0, v.TotalProfitLoss)
}

func TestValuateEmptyPortfolio(t *testing.T) {
	t.Parallel()

	v := Valuate(10000, nil, quotes(map[string]float64{"BTC": 45000}))

	assert.Empty(t, v.Holdings)
	assert.NotNil(t, v.Holdings)
	assert.Equal(t, 10000.0, v.TotalValue)
	assert.Equal(t, 10000.0, v.TotalInvested)
	assert.Equal(t, 0.0, v.TotalProfitLoss)
	assert.Equal(t, 0.0, v.ProfitLossPercentage)
}

func TestValuateZeroInvestedBase(t *testing.T) {
	t.Parallel()

	// No balance and no holdings: percentage guards against dividing by a
	// zero invested base.
	v := Valuate(0, nil, quotes(nil))
	assert.Equal(t, 0.0, v.ProfitLossPercentage)
}

func TestValuateMultipleHoldings(t *testing.T) {
	t.Parallel()

	holdings := []models.Holding{
		{Symbol: "BTC", Amount: 0.5, AvgBuyPrice: 40000},
		{Symbol: "SOL", Amount: 50, AvgBuyPrice: 120},
	}
	prices := quotes(map[string]float64{"BTC": 45000, "SOL": 100})

	v := Valuate(1000, holdings, prices)

	// BTC: value 22500, invested 20000. SOL: value 5000, invested 6000.
	assert.InDelta(t, 28500.0, v.TotalValue, 1e-9)
	assert.InDelta(t, 27000.0, v.TotalInvested, 1e-9)
	assert.InDelta(t, 1500.0, v.TotalProfitLoss, 1e-9)
	assert.InDelta(t, 1500.0/27000.0*100, v.ProfitLossPercentage, 1e-9)
}
