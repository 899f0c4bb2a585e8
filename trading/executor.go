// Package trading validates and executes simulated buy/sell orders against a
// user's portfolio.
package trading

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crypto-tracker/database"
	"crypto-tracker/models"
)

var (
	ErrInvalidOrder         = errors.New("invalid order")
	ErrPortfolioNotFound    = errors.New("portfolio not found")
	ErrInsufficientFunds    = errors.New("insufficient USD balance")
	ErrInsufficientPosition = errors.New("insufficient crypto balance")
)

// Order is a trade request as submitted by the client. Price and Total are
// taken as given: the execution price is not re-checked against a live quote,
// so the client's last poll sets the fill price.
type Order struct {
	Symbol string  `json:"symbol" binding:"required"`
	Type   string  `json:"type" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Price  float64 `json:"price" binding:"required"`
	Total  float64 `json:"total" binding:"required"`
}

func (o Order) validate() error {
	if !models.IsSupportedAsset(o.Symbol) {
		return fmt.Errorf("%w: unsupported symbol %q", ErrInvalidOrder, o.Symbol)
	}
	if o.Type != models.TradeTypeBuy && o.Type != models.TradeTypeSell {
		return fmt.Errorf("%w: type must be BUY or SELL", ErrInvalidOrder)
	}
	if o.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidOrder)
	}
	if o.Price <= 0 || o.Total <= 0 {
		return fmt.Errorf("%w: price and total must be greater than 0", ErrInvalidOrder)
	}
	return nil
}

// Execute applies one order to the user's portfolio. The ledger insert,
// balance update and holding change commit as a single transaction; on any
// error nothing is applied and the caller must resubmit a fresh order.
//
// The portfolio row is read FOR UPDATE before validation, so two concurrent
// orders for the same user serialize at the database instead of both passing
// the solvency check against a stale balance.
func Execute(db *gorm.DB, userID uint, order Order) (*models.Trade, error) {
	if err := order.validate(); err != nil {
		return nil, err
	}

	var trade models.Trade

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		query := tx.Where("user_id = ?", userID)
		if tx.Dialector.Name() == "postgres" {
			// sqlite (used in tests) has no row locks and serializes
			// writers on its own.
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var pf models.Portfolio
		if err := query.First(&pf).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPortfolioNotFound
			}
			return fmt.Errorf("failed to load portfolio: %w", err)
		}

		var holding models.Holding
		holdingErr := tx.Where("portfolio_id = ? AND symbol = ?", pf.ID, order.Symbol).First(&holding).Error
		if holdingErr != nil && !errors.Is(holdingErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load holding: %w", holdingErr)
		}
		hasHolding := holdingErr == nil

		switch order.Type {
		case models.TradeTypeBuy:
			if order.Total > pf.USDBalance {
				return ErrInsufficientFunds
			}
		case models.TradeTypeSell:
			if !hasHolding || holding.Amount < order.Amount {
				return ErrInsufficientPosition
			}
		}

		trade = models.Trade{
			UserID: userID,
			Symbol: order.Symbol,
			Type:   order.Type,
			Amount: order.Amount,
			Price:  order.Price,
			Total:  order.Total,
		}
		if err := tx.Create(&trade).Error; err != nil {
			return fmt.Errorf("failed to record trade: %w", err)
		}

		if order.Type == models.TradeTypeBuy {
			return applyBuy(tx, &pf, &holding, hasHolding, order)
		}
		return applySell(tx, &pf, &holding, order)
	})
	if err != nil {
		return nil, err
	}

	return &trade, nil
}

func applyBuy(tx *gorm.DB, pf *models.Portfolio, holding *models.Holding, hasHolding bool, order Order) error {
	newBalance := pf.USDBalance - order.Total
	if err := tx.Model(pf).Update("usd_balance", newBalance).Error; err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	if hasHolding {
		// Weighted-average cost basis across all buys of the position.
		newAmount := holding.Amount + order.Amount
		newAvgPrice := (holding.Amount*holding.AvgBuyPrice + order.Total) / newAmount

		err := tx.Model(holding).Updates(map[string]interface{}{
			"amount":        newAmount,
			"avg_buy_price": newAvgPrice,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update holding: %w", err)
		}
		return nil
	}

	newHolding := models.Holding{
		PortfolioID: pf.ID,
		Symbol:      order.Symbol,
		Amount:      order.Amount,
		AvgBuyPrice: order.Price,
	}
	if err := tx.Create(&newHolding).Error; err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}
	return nil
}

func applySell(tx *gorm.DB, pf *models.Portfolio, holding *models.Holding, order Order) error {
	newBalance := pf.USDBalance + order.Total
	if err := tx.Model(pf).Update("usd_balance", newBalance).Error; err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	if holding.Amount == order.Amount {
		// Hard delete so the (portfolio, symbol) unique index does not
		// collide with a soft-deleted row on a later re-buy.
		if err := tx.Unscoped().Delete(holding).Error; err != nil {
			return fmt.Errorf("failed to remove holding: %w", err)
		}
		return nil
	}

	// Partial sell: the cost basis of the remaining position is unchanged.
	if err := tx.Model(holding).Update("amount", holding.Amount-order.Amount).Error; err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}
	return nil
}
