package pinata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"tallyclank/internal/config"
	"tallyclank/pkg/httpclient"
)

type Client struct {
	http       *httpclient.Client
	uploadURL  string
	gatewayURL string
	logger     *zap.Logger
}

func New(cfg config.PinataConfig, logger *zap.Logger) *Client {
	httpCfg := httpclient.Config{
		Timeout: cfg.Timeout,
		Headers: map[string]string{
			"Authorization": "Bearer " + cfg.JWT,
		},
	}
	return &Client{
		http:       httpclient.New(httpCfg, logger),
		uploadURL:  cfg.UploadURL,
		gatewayURL: cfg.GatewayURL,
		logger:     logger,
	}
}

type uploadResponse struct {
	Data struct {
		ID   string `json:"id"`
		CID  string `json:"cid"`
		Name string `json:"name"`
		Size int64  `json:"size"`
	} `json:"data"`
}

type UploadResult struct {
	CID        string
	GatewayURL string
}

// Upload pins a file publicly and returns the CID plus a gateway URL built
// from the configured dedicated gateway host.
func (c *Client) Upload(ctx context.Context, filename string, reader io.Reader) (*UploadResult, error) {
	form := map[string]string{"network": "public"}
	resp, err := c.http.PostFile(ctx, c.uploadURL, "file", filename, reader, form, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		c.logger.Warn("pinata upload rejected",
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Bytes()),
		)
		return nil, fmt.Errorf("pinata: status %d", resp.StatusCode())
	}
	var decoded uploadResponse
	if err := json.Unmarshal(resp.Bytes(), &decoded); err != nil {
		return nil, fmt.Errorf("pinata: invalid JSON response: %w", err)
	}
	if decoded.Data.CID == "" {
		return nil, fmt.Errorf("pinata: response missing cid")
	}
	gateway := c.gatewayURL
	if gateway == "" {
		gateway = "gateway.pinata.cloud"
	}
	return &UploadResult{
		CID:        decoded.Data.CID,
		GatewayURL: fmt.Sprintf("https://%s/ipfs/%s", gateway, decoded.Data.CID),
	}, nil
}
