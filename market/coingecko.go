package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"crypto-tracker/config"
	"crypto-tracker/models"
)

const (
	// Quotes are cached for the same 30 seconds the dashboard polls at, so
	// staleness is bounded by poll interval plus cache TTL.
	cacheExpiration = 30 * time.Second
	cacheKey        = "crypto:prices"

	defaultAPIURL = "https://api.coingecko.com/api/v3"

	// CoinGecko ids for the supported assets, in market-cap order.
	coinIDs = "bitcoin,ethereum,tether,usd-coin,monero,solana"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// FetchPrices returns the current quote map for the supported assets. It
// checks the Redis cache first, then CoinGecko; on any failure it returns the
// static fallback table. It never returns an error to the caller.
func FetchPrices(ctx context.Context) models.CryptoPriceMap {
	if cached, err := config.Rdb.Get(ctx, cacheKey).Result(); err == nil {
		var prices models.CryptoPriceMap
		if err := json.Unmarshal([]byte(cached), &prices); err == nil {
			return prices
		}
	}

	prices, err := fetchFromCoinGecko(ctx)
	if err != nil {
		log.Println("Error fetching crypto prices:", err)
		return models.MockCryptoPrices
	}

	// Cache write failure is not worth failing the request over.
	if data, err := json.Marshal(prices); err == nil {
		if err := config.Rdb.Set(ctx, cacheKey, data, cacheExpiration).Err(); err != nil {
			log.Println("Failed to cache crypto prices:", err)
		}
	}

	return prices
}

func fetchFromCoinGecko(ctx context.Context) (models.CryptoPriceMap, error) {
	baseURL := os.Getenv("COINGECKO_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&ids=%s&order=market_cap_desc&per_page=100&page=1&sparkline=false&price_change_percentage=24h",
		baseURL, coinIDs)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	var coins []models.CryptoPrice
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return nil, err
	}

	if len(coins) == 0 {
		return nil, fmt.Errorf("coingecko returned no quotes")
	}

	prices := make(models.CryptoPriceMap, len(coins))
	for _, coin := range coins {
		prices[strings.ToUpper(coin.Symbol)] = coin
	}

	return prices, nil
}
