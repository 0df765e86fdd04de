package neynar

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"tallyclank/internal/config"
	"tallyclank/internal/normalize"
	"tallyclank/pkg/httpclient"
)

// Client looks up Farcaster identities through the Neynar API. Lookups are
// best-effort enrichment: callers treat every error as "no profile".
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *zap.Logger
}

func New(cfg config.NeynarConfig, logger *zap.Logger) *Client {
	httpCfg := httpclient.Config{
		Timeout:       cfg.Timeout,
		RatePerMinute: cfg.RatePerMinute,
		Headers: map[string]string{
			"accept":                "application/json",
			"x-api-key":             cfg.APIKey,
			"x-neynar-experimental": "false",
		},
	}
	return &Client{
		http:    httpclient.New(httpCfg, logger),
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

type userBulkResponse struct {
	Users []struct {
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
		Profile     struct {
			Bio struct {
				Text string `json:"text"`
			} `json:"bio"`
		} `json:"profile"`
		PfpURL         string `json:"pfp_url"`
		FollowerCount  int64  `json:"follower_count"`
		FollowingCount int64  `json:"following_count"`
	} `json:"users"`
}

// UserByFID fetches one Farcaster profile. A missing user is not an error;
// it returns nil.
func (c *Client) UserByFID(ctx context.Context, fid int64) (*normalize.Profile, error) {
	url := c.baseURL + "/v2/farcaster/user/bulk"
	resp, err := c.http.Get(ctx, url, map[string]string{"fids": strconv.FormatInt(fid, 10)}, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("neynar: status %d", resp.StatusCode())
	}
	var decoded userBulkResponse
	if err := json.Unmarshal(resp.Bytes(), &decoded); err != nil {
		return nil, fmt.Errorf("neynar: invalid JSON response: %w", err)
	}
	if len(decoded.Users) == 0 {
		return nil, nil
	}
	user := decoded.Users[0]
	return &normalize.Profile{
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		Bio:            user.Profile.Bio.Text,
		PfpURL:         user.PfpURL,
		FollowerCount:  user.FollowerCount,
		FollowingCount: user.FollowingCount,
	}, nil
}
