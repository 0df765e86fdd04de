package httpclient

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"resty.dev/v3"
)

type Config struct {
	Timeout       time.Duration
	RatePerMinute int
	UserAgent     string
	Headers       map[string]string
}

// Client is a thin resty wrapper shared by the upstream API clients. It
// enforces a request timeout and a per-upstream rate limit, and leaves status
// handling to the caller so proxy routes can mirror upstream status codes.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60), 1)
	}

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
			if limiter != nil {
				waitCtx, cancel := context.WithTimeout(r.Context(), cfg.Timeout)
				defer cancel()
				if err := limiter.Wait(waitCtx); err != nil {
					logger.Warn("rate limiter wait failed", zap.Error(err))
					return err
				}
			}
			if cfg.UserAgent != "" {
				r.SetHeader("User-Agent", cfg.UserAgent)
			}
			for k, v := range cfg.Headers {
				r.SetHeader(k, v)
			}
			logger.Debug("outgoing request", zap.String("url", r.URL))
			return nil
		}).
		AddResponseMiddleware(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				logger.Warn("upstream request failed",
					zap.Int("status", resp.StatusCode()),
					zap.String("url", resp.Request.URL),
				)
			}
			return nil
		})

	return &Client{
		client:  restyClient,
		logger:  logger,
		limiter: limiter,
	}
}

// Get issues a GET and returns the response regardless of status code. The
// error is non-nil only for transport failures (DNS, connect, timeout).
func (c *Client) Get(ctx context.Context, url string, query map[string]string, headers map[string]string) (*resty.Response, error) {
	req := c.client.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		c.logger.Error("http get failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, url string, body any, headers map[string]string) (*resty.Response, error) {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if headers != nil {
		req.SetHeaders(headers)
	}
	resp, err := req.Post(url)
	if err != nil {
		c.logger.Error("http post failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// PostFile issues a multipart POST streaming a single file field plus
// optional form fields.
func (c *Client) PostFile(ctx context.Context, url, field, filename string, reader io.Reader, form map[string]string, headers map[string]string) (*resty.Response, error) {
	req := c.client.R().
		SetContext(ctx).
		SetFileReader(field, filename, reader)
	if form != nil {
		req.SetFormData(form)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}
	resp, err := req.Post(url)
	if err != nil {
		c.logger.Error("http multipart post failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return resp, nil
}
