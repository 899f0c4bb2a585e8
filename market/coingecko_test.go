package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-tracker/config"
	"crypto-tracker/models"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	config.Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr
}

// newQuoteServer serves a fixed two-coin markets response and counts requests.
func newQuoteServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Contains(t, r.URL.Query().Get("ids"), "bitcoin")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":52000,"price_change_percentage_24h":1.1,"market_cap":1,"total_volume":1,"image":""},
			{"id":"solana","symbol":"sol","name":"Solana","current_price":95,"price_change_percentage_24h":-0.4,"market_cap":1,"total_volume":1,"image":""}
		]`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetchPricesParsesResponse(t *testing.T) {
	setupRedis(t)
	srv, _ := newQuoteServer(t)
	t.Setenv("COINGECKO_API_URL", srv.URL)

	prices := FetchPrices(context.Background())

	require.Len(t, prices, 2)
	assert.Equal(t, 52000.0, prices["BTC"].CurrentPrice)
	assert.Equal(t, 95.0, prices["SOL"].CurrentPrice)
}

func TestFetchPricesCacheHitSkipsHTTP(t *testing.T) {
	mr := setupRedis(t)
	srv, hits := newQuoteServer(t)
	t.Setenv("COINGECKO_API_URL", srv.URL)

	first := FetchPrices(context.Background())
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))

	// The quote map is cached for the poll interval.
	assert.Equal(t, cacheExpiration, mr.TTL(cacheKey))

	second := FetchPrices(context.Background())
	assert.EqualValues(t, 1, atomic.LoadInt32(hits), "second call within the TTL must not hit the API")
	assert.Equal(t, first, second)
}

func TestFetchPricesRefetchesAfterExpiry(t *testing.T) {
	mr := setupRedis(t)
	srv, hits := newQuoteServer(t)
	t.Setenv("COINGECKO_API_URL", srv.URL)

	FetchPrices(context.Background())
	require.EqualValues(t, 1, atomic.LoadInt32(hits))

	mr.FastForward(cacheExpiration + time.Second)

	FetchPrices(context.Background())
	assert.EqualValues(t, 2, atomic.LoadInt32(hits), "expired cache entry forces a fresh fetch")
}

func TestFetchPricesCorruptCacheFallsThrough(t *testing.T) {
	mr := setupRedis(t)
	srv, hits := newQuoteServer(t)
	t.Setenv("COINGECKO_API_URL", srv.URL)

	require.NoError(t, mr.Set(cacheKey, "{not json"))

	prices := FetchPrices(context.Background())

	assert.EqualValues(t, 1, atomic.LoadInt32(hits), "unreadable cache entry falls through to the API")
	assert.Equal(t, 52000.0, prices["BTC"].CurrentPrice)

	// The bad entry was replaced: the next call is a cache hit again.
	FetchPrices(context.Background())
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestFetchPricesFallsBackOnServerError(t *testing.T) {
	mr := setupRedis(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	t.Setenv("COINGECKO_API_URL", srv.URL)

	prices := FetchPrices(context.Background())

	assert.Equal(t, models.MockCryptoPrices, prices)
	assert.Equal(t, 45000.0, prices["BTC"].CurrentPrice)
	assert.False(t, mr.Exists(cacheKey), "fallback quotes are not cached")
}

func TestFetchPricesFallsBackOnBadJSON(t *testing.T) {
	setupRedis(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()
	t.Setenv("COINGECKO_API_URL", srv.URL)

	assert.Equal(t, models.MockCryptoPrices, FetchPrices(context.Background()))
}

func TestFetchPricesFallsBackWhenUnreachable(t *testing.T) {
	setupRedis(t)
	t.Setenv("COINGECKO_API_URL", "http://127.0.0.1:1")

	assert.Equal(t, models.MockCryptoPrices, FetchPrices(context.Background()))
}
