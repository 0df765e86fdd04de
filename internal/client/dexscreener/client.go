package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tallyclank/internal/config"
	"tallyclank/pkg/httpclient"
)

type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *zap.Logger
}

func New(cfg config.DexScreenerConfig, logger *zap.Logger) *Client {
	httpCfg := httpclient.Config{
		Timeout:       cfg.Timeout,
		RatePerMinute: cfg.RatePerMinute,
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Cache-Control": "no-cache, no-store, must-revalidate",
		},
	}
	return &Client{
		http:    httpclient.New(httpCfg, logger),
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// TokenPairs returns every pair DexScreener knows for a token address.
func (c *Client) TokenPairs(ctx context.Context, tokenAddress string) (*TokenPairsResponse, error) {
	url := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, tokenAddress)
	resp, err := c.http.Get(ctx, url, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("dexscreener: status %d: %s", resp.StatusCode(), truncate(resp.Bytes(), 200))
	}
	var out TokenPairsResponse
	if err := json.Unmarshal(resp.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("dexscreener: invalid JSON response: %w", err)
	}
	return &out, nil
}

// Pair returns a single pair by chain and pair address, undecoded, for the
// passthrough route.
func (c *Client) Pair(ctx context.Context, chainID, pairAddress string) (any, error) {
	url := fmt.Sprintf("%s/latest/dex/pairs/%s/%s", c.baseURL, chainID, pairAddress)
	resp, err := c.http.Get(ctx, url, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("dexscreener: status %d: %s", resp.StatusCode(), truncate(resp.Bytes(), 200))
	}
	var out any
	if err := json.Unmarshal(resp.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("dexscreener: invalid JSON response: %w", err)
	}
	return out, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
