package models

import (
	"time"

	"gorm.io/gorm"
)

// StartingBalance is the virtual USD balance granted on signup.
const StartingBalance = 10000.0

const (
	TradeTypeBuy  = "BUY"
	TradeTypeSell = "SELL"
)

type Portfolio struct {
	gorm.Model
	UserID     uint      `gorm:"uniqueIndex" json:"userId"`
	USDBalance float64   `gorm:"column:usd_balance" json:"usdBalance"`
	Holdings   []Holding `gorm:"foreignKey:PortfolioID" json:"holdings,omitempty"`
}

type Holding struct {
	gorm.Model
	PortfolioID uint    `gorm:"index:idx_portfolio_symbol,unique" json:"portfolioId"`
	Symbol      string  `gorm:"index:idx_portfolio_symbol,unique" json:"symbol"`
	Amount      float64 `json:"amount"`
	AvgBuyPrice float64 `json:"avgBuyPrice"`
}

// Trade is an append-only ledger entry; rows are never updated or deleted.
// Fields are spelled out instead of embedding gorm.Model so ledger entries
// serialize with the same camelCase keys as the rest of the API.
type Trade struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index" json:"userId"`
	Symbol    string         `json:"symbol"`
	Type      string         `json:"type"` // BUY or SELL
	Amount    float64        `json:"amount"`
	Price     float64        `json:"price"`
	Total     float64        `json:"total"`
}
