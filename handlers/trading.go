package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crypto-tracker/config"
	"crypto-tracker/models"
	"crypto-tracker/trading"
)

const defaultHistoryLimit = 10

// ExecuteTrade applies a buy/sell order to the user's portfolio.
func ExecuteTrade(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var order trading.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	trade, err := trading.Execute(config.DB, userID, order)
	if err != nil {
		switch {
		case errors.Is(err, trading.ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, trading.ErrPortfolioNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		case errors.Is(err, trading.ErrInsufficientFunds), errors.Is(err, trading.ErrInsufficientPosition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Println("Error executing trade:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Trade executed successfully",
		"trade":   trade,
	})
}

// GetTradeHistory returns the user's most recent trades, newest first.
func GetTradeHistory(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	var trades []models.Trade
	err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&trades).Error
	if err != nil {
		log.Println("Error fetching trade history:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trade history"})
		return
	}

	c.JSON(http.StatusOK, trades)
}
