package clanker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tallyclank/internal/config"
	"tallyclank/pkg/httpclient"
)

// Client talks to the Clanker token-launch platform API. Every method
// returns the decoded JSON body together with the upstream status code so
// gateway routes can mirror upstream failures; the error is non-nil only for
// transport or JSON-decode failures.
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *zap.Logger
}

func New(cfg config.ClankerConfig, logger *zap.Logger) *Client {
	httpCfg := httpclient.Config{
		Timeout:       cfg.Timeout,
		RatePerMinute: cfg.RatePerMinute,
		Headers: map[string]string{
			"x-api-key":     cfg.APIKey,
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

// Host returns the scheme+host of the configured API base, used to
// absolutize relative asset URLs returned by the listing endpoints.
func (c *Client) Host() string {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func (c *Client) ListTokens(ctx context.Context, page, limit int) (any, int, error) {
	query := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
		// Cache-busting timestamp, same trick the browser plays on us.
		"_t": strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	return c.getJSON(ctx, c.baseURL+"/tokens", query)
}

// TokensPage fetches one typed listing page for the sync job. Unlike the
// gateway methods it treats a non-2xx status as an error, because the sync
// job has no status to mirror.
func (c *Client) TokensPage(ctx context.Context, limit int) ([]APIToken, error) {
	resp, err := c.http.Get(ctx, c.baseURL+"/tokens", map[string]string{"limit": strconv.Itoa(limit)}, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("clanker: status %d: %s", resp.StatusCode(), truncate(resp.Bytes(), 200))
	}
	var envelope struct {
		Data    []APIToken `json:"data"`
		Total   int64      `json:"total"`
		HasMore bool       `json:"hasMore"`
	}
	if err := json.Unmarshal(resp.Bytes(), &envelope); err != nil {
		return nil, fmt.Errorf("clanker: invalid JSON response: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("clanker: listing response missing data array")
	}
	return envelope.Data, nil
}

func (c *Client) SearchTokens(ctx context.Context, q string) (any, int, error) {
	return c.getJSON(ctx, c.baseURL+"/tokens/search", map[string]string{"q": q})
}

func (c *Client) TrendingTokens(ctx context.Context, page, limit int) (any, int, error) {
	query := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
		"_t":    strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	return c.getJSON(ctx, c.baseURL+"/tokens/trending", query)
}

// TrendingRaw fetches the h24-ordered trending feed without any local
// processing; the route serves it verbatim.
func (c *Client) TrendingRaw(ctx context.Context, page int) (any, int, error) {
	query := map[string]string{
		"page":  strconv.Itoa(page),
		"order": "h24_trending",
	}
	return c.getJSON(ctx, c.baseURL+"/tokens/trending", query)
}

func (c *Client) DeployedByAddress(ctx context.Context, address string, page int) (any, int, error) {
	query := map[string]string{
		"address": address,
		"page":    strconv.Itoa(page),
	}
	return c.getJSON(ctx, c.baseURL+"/tokens/fetch-deployed-by-address", query)
}

func (c *Client) Deploy(ctx context.Context, payload DeployRequest) (any, int, error) {
	resp, err := c.http.PostJSON(ctx, c.baseURL+"/tokens/deploy", payload, nil)
	if err != nil {
		return nil, 0, err
	}
	return decodeBody(resp.Bytes(), resp.StatusCode())
}

func (c *Client) getJSON(ctx context.Context, rawURL string, query map[string]string) (any, int, error) {
	resp, err := c.http.Get(ctx, rawURL, query, nil)
	if err != nil {
		return nil, 0, err
	}
	return decodeBody(resp.Bytes(), resp.StatusCode())
}

func decodeBody(body []byte, status int) (any, int, error) {
	if len(body) == 0 {
		return nil, status, nil
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		if status >= 200 && status < 300 {
			return nil, status, fmt.Errorf("clanker: invalid JSON response: %w", err)
		}
		// Error bodies are frequently plain text; surface them as-is.
		return string(body), status, nil
	}
	return decoded, status, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
