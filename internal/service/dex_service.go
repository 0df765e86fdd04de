package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tallyclank/internal/cache"
	"tallyclank/internal/client/dexscreener"
)

// MainPair is the flattened view of the most liquid (or preferred-chain)
// trading pair for a token.
type MainPair struct {
	Name           string                `json:"name"`
	Symbol         string                `json:"symbol"`
	Price          float64               `json:"price"`
	PriceChange24h float64               `json:"priceChange24h"`
	Volume24h      float64               `json:"volume24h"`
	Liquidity      float64               `json:"liquidity"`
	Fdv            float64               `json:"fdv"`
	MarketCap      float64               `json:"marketCap"`
	PairAddress    string                `json:"pairAddress"`
	DexID          string                `json:"dexId"`
	ChainID        string                `json:"chainId"`
	URL            string                `json:"url"`
	BaseToken      dexscreener.PairToken `json:"baseToken"`
	QuoteToken     dexscreener.PairToken `json:"quoteToken"`
	PairCreatedAt  int64                 `json:"pairCreatedAt"`
}

// TokenPairs is the processed analytics payload for one token. When no pairs
// exist the Message field explains why and Pairs is an empty slice.
type TokenPairs struct {
	MainPair   *MainPair          `json:"mainPair,omitempty"`
	AllPairs   []dexscreener.Pair `json:"allPairs,omitempty"`
	TotalPairs int                `json:"totalPairs"`
	Pairs      []dexscreener.Pair `json:"pairs,omitempty"`
	Message    string             `json:"message,omitempty"`
}

type DexService struct {
	Client *dexscreener.Client
	Cache  *cache.TTLCache
	Logger *zap.Logger
	TTL    time.Duration
}

func (s *DexService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 30 * time.Second
}

// GetToken returns the processed pair analytics for one token address,
// preferring pairs on chainID when present and the deepest liquidity
// otherwise.
func (s *DexService) GetToken(ctx context.Context, chainID, tokenAddress string, forceRefresh bool) (*TokenPairs, error) {
	key := cache.Key("dex", chainID, tokenAddress)
	if !forceRefresh {
		if cached, ok := s.Cache.Get(key); ok {
			return cached.(*TokenPairs), nil
		}
	}

	resp, err := s.Client.TokenPairs(ctx, tokenAddress)
	if err != nil {
		return nil, err
	}

	processed := processPairs(resp, chainID)
	s.Cache.Set(key, processed, s.ttl())
	return processed, nil
}

// GetPair returns the raw upstream payload for a single pair address.
func (s *DexService) GetPair(ctx context.Context, chainID, pairAddress string, forceRefresh bool) (any, error) {
	key := cache.Key("dexpair", chainID, pairAddress)
	if !forceRefresh {
		if cached, ok := s.Cache.Get(key); ok {
			return cached, nil
		}
	}

	data, err := s.Client.Pair(ctx, chainID, pairAddress)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(key, data, s.ttl())
	return data, nil
}

func processPairs(resp *dexscreener.TokenPairsResponse, preferredChain string) *TokenPairs {
	if resp == nil || resp.Pairs == nil {
		return &TokenPairs{Pairs: []dexscreener.Pair{}, Message: "No pairs data found"}
	}
	if len(resp.Pairs) == 0 {
		return &TokenPairs{Pairs: []dexscreener.Pair{}, Message: "No pairs found for this token"}
	}

	sorted := make([]dexscreener.Pair, len(resp.Pairs))
	copy(sorted, resp.Pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return liquidityUsd(sorted[i]) > liquidityUsd(sorted[j])
	})

	main := sorted[0]
	for _, pair := range sorted {
		if pair.ChainID == preferredChain {
			main = pair
			break
		}
	}

	return &TokenPairs{
		MainPair:   flattenPair(main),
		AllPairs:   sorted,
		TotalPairs: len(sorted),
	}
}

func flattenPair(pair dexscreener.Pair) *MainPair {
	name := pair.BaseToken.Name
	if name == "" {
		name = "Unknown Token"
	}
	symbol := pair.BaseToken.Symbol
	if symbol == "" {
		symbol = "???"
	}
	return &MainPair{
		Name:           name,
		Symbol:         symbol,
		Price:          parsePrice(pair.PriceUsd),
		PriceChange24h: pair.PriceChange.H24,
		Volume24h:      pair.Volume.H24,
		Liquidity:      liquidityUsd(pair),
		Fdv:            pair.Fdv,
		MarketCap:      pair.MarketCap,
		PairAddress:    pair.PairAddress,
		DexID:          pair.DexID,
		ChainID:        pair.ChainID,
		URL:            pair.URL,
		BaseToken:      pair.BaseToken,
		QuoteToken:     pair.QuoteToken,
		PairCreatedAt:  pair.PairCreatedAt,
	}
}

func liquidityUsd(pair dexscreener.Pair) float64 {
	if pair.Liquidity == nil {
		return 0
	}
	return pair.Liquidity.Usd
}

func parsePrice(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
