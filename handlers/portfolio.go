package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crypto-tracker/config"
	"crypto-tracker/models"
	"crypto-tracker/portfolio"
)

// GetPortfolio returns the user's holdings valued at current prices, with
// per-holding and aggregate profit/loss.
func GetPortfolio(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var pf models.Portfolio
	err := config.DB.Preload("Holdings").Where("user_id = ?", userID).First(&pf).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
		return
	}

	prices := fetchPrices(c.Request.Context())

	c.JSON(http.StatusOK, portfolio.Valuate(pf.USDBalance, pf.Holdings, prices))
}
