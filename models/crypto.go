package models

// CryptoPrice is a live market quote as returned by CoinGecko's
// /coins/markets endpoint. Quotes are ephemeral: cached briefly in Redis,
// never persisted.
type CryptoPrice struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	CurrentPrice             float64 `json:"current_price"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	MarketCap                float64 `json:"market_cap"`
	TotalVolume              float64 `json:"total_volume"`
	Image                    string  `json:"image"`
}

// CryptoPriceMap keys quotes by upper-case symbol (BTC, ETH, ...).
type CryptoPriceMap map[string]CryptoPrice

// SupportedAssets maps the fixed tradable symbols to their CoinGecko ids.
// Adding an asset means extending this map and the fallback table below.
var SupportedAssets = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"USDT": "tether",
	"USDC": "usd-coin",
	"XMR":  "monero",
	"SOL":  "solana",
}

// IsSupportedAsset reports whether symbol is tradable.
func IsSupportedAsset(symbol string) bool {
	_, ok := SupportedAssets[symbol]
	return ok
}

// MockCryptoPrices is the static fallback served when CoinGecko is
// unreachable, so the prices endpoint never errors to the client.
var MockCryptoPrices = CryptoPriceMap{
	"BTC": {
		ID:                       "bitcoin",
		Symbol:                   "btc",
		Name:                     "Bitcoin",
		CurrentPrice:             45000,
		PriceChangePercentage24h: 2.5,
		MarketCap:                850000000000,
		TotalVolume:              25000000000,
		Image:                    "https://assets.coingecko.com/coins/images/1/large/bitcoin.png",
	},
	"ETH": {
		ID:                       "ethereum",
		Symbol:                   "eth",
		Name:                     "Ethereum",
		CurrentPrice:             3000,
		PriceChangePercentage24h: -1.2,
		MarketCap:                360000000000,
		TotalVolume:              15000000000,
		Image:                    "https://assets.coingecko.com/coins/images/279/large/ethereum.png",
	},
	"USDT": {
		ID:                       "tether",
		Symbol:                   "usdt",
		Name:                     "Tether",
		CurrentPrice:             1.00,
		PriceChangePercentage24h: 0.01,
		MarketCap:                120000000000,
		TotalVolume:              50000000000,
		Image:                    "https://assets.coingecko.com/coins/images/325/large/Tether.png",
	},
	"USDC": {
		ID:                       "usd-coin",
		Symbol:                   "usdc",
		Name:                     "USD Coin",
		CurrentPrice:             1.00,
		PriceChangePercentage24h: 0.01,
		MarketCap:                80000000000,
		TotalVolume:              30000000000,
		Image:                    "https://assets.coingecko.com/coins/images/6319/large/USD_Coin_icon.png",
	},
	"XMR": {
		ID:                       "monero",
		Symbol:                   "xmr",
		Name:                     "Monero",
		CurrentPrice:             150,
		PriceChangePercentage24h: 3.2,
		MarketCap:                2700000000,
		TotalVolume:              50000000,
		Image:                    "https://assets.coingecko.com/coins/images/69/large/monero_logo.png",
	},
	"SOL": {
		ID:                       "solana",
		Symbol:                   "sol",
		Name:                     "Solana",
		CurrentPrice:             100,
		PriceChangePercentage24h: 5.8,
		MarketCap:                45000000000,
		TotalVolume:              2000000000,
		Image:                    "https://assets.coingecko.com/coins/images/4128/large/solana.png",
	},
}
