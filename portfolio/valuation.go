// Package portfolio computes portfolio valuations. It is a pure projection of
// stored holdings over a quote map and performs no I/O.
package portfolio

import (
	"crypto-tracker/models"
)

type HoldingValuation struct {
	Symbol               string  `json:"symbol"`
	Amount               float64 `json:"amount"`
	AvgBuyPrice          float64 `json:"avgBuyPrice"`
	CurrentPrice         float64 `json:"currentPrice"`
	Value                float64 `json:"value"`
	ProfitLoss           float64 `json:"profitLoss"`
	ProfitLossPercentage float64 `json:"profitLossPercentage"`
}

type Valuation struct {
	TotalValue           float64            `json:"totalValue"`
	TotalInvested        float64            `json:"totalInvested"`
	TotalProfitLoss      float64            `json:"totalProfitLoss"`
	ProfitLossPercentage float64            `json:"profitLossPercentage"`
	Holdings             []HoldingValuation `json:"holdings"`
}

// Valuate prices each holding against the quote map and aggregates. The USD
// balance counts towards both total value and total invested. A held symbol
// missing from the quote map is valued at 0, which surfaces as a fully
// negative P&L rather than an error.
func Valuate(usdBalance float64, holdings []models.Holding, prices models.CryptoPriceMap) Valuation {
	totalValue := usdBalance
	totalInvested := usdBalance
	totalProfitLoss := 0.0

	valued := make([]HoldingValuation, 0, len(holdings))
	for _, h := range holdings {
		currentPrice := 0.0
		if quote, ok := prices[h.Symbol]; ok {
			currentPrice = quote.CurrentPrice
		}

		value := h.Amount * currentPrice
		invested := h.Amount * h.AvgBuyPrice
		profitLoss := value - invested

		profitLossPct := 0.0
		if invested > 0 {
			profitLossPct = profitLoss / invested * 100
		}

		totalValue += value
		totalInvested += invested
		totalProfitLoss += profitLoss

		valued = append(valued, HoldingValuation{
			Symbol:               h.Symbol,
			Amount:               h.Amount,
			AvgBuyPrice:          h.AvgBuyPrice,
			CurrentPrice:         currentPrice,
			Value:                value,
			ProfitLoss:           profitLoss,
			ProfitLossPercentage: profitLossPct,
		})
	}

	profitLossPct := 0.0
	if totalInvested > 0 {
		profitLossPct = totalProfitLoss / totalInvested * 100
	}

	return Valuation{
		TotalValue:           totalValue,
		TotalInvested:        totalInvested,
		TotalProfitLoss:      totalProfitLoss,
		ProfitLossPercentage: profitLossPct,
		Holdings:             valued,
	}
}
