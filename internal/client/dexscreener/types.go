package dexscreener

type TokenPairsResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"`
}

// Pair is one trading pair row. DexScreener encodes prices and liquidity as
// strings in some fields and numbers in others; the string fields are parsed
// at processing time.
type Pair struct {
	ChainID       string     `json:"chainId"`
	DexID         string     `json:"dexId"`
	URL           string     `json:"url"`
	PairAddress   string     `json:"pairAddress"`
	BaseToken     PairToken  `json:"baseToken"`
	QuoteToken    PairToken  `json:"quoteToken"`
	PriceNative   string     `json:"priceNative"`
	PriceUsd      string     `json:"priceUsd"`
	Volume        Window     `json:"volume"`
	PriceChange   Window     `json:"priceChange"`
	Liquidity     *Liquidity `json:"liquidity"`
	Fdv           float64    `json:"fdv"`
	MarketCap     float64    `json:"marketCap"`
	PairCreatedAt int64      `json:"pairCreatedAt"`
}

type PairToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type Liquidity struct {
	Usd   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// Window holds per-timeframe values (5m / 1h / 6h / 24h).
type Window struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}
