package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crypto-tracker/market"
)

// fetchPrices is swapped out in tests.
var fetchPrices = market.FetchPrices

// GetCryptoPrices returns the quote map for the supported assets. Price
// source failures are handled inside the fetch with static fallback data, so
// this endpoint never errors.
func GetCryptoPrices(c *gin.Context) {
	prices := fetchPrices(c.Request.Context())
	c.JSON(http.StatusOK, prices)
}
