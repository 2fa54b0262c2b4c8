// Package imagegen generates book cover images through an
// OpenAI-compatible image generation API.
package imagegen

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client calls the image generation API. Requests are rate limited so
// a batch of covers can't exhaust the provider quota.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
	// APIKey is sent as a bearer token.
	APIKey string
	// RatePerMinute caps outbound requests. Zero means 20.
	RatePerMinute int
	// RequestTimeout bounds each HTTP request. Zero means 30s.
	RequestTimeout time.Duration
}

// NewClient creates a new image generation client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	perMinute := opts.RatePerMinute
	if perMinute <= 0 {
		perMinute = 20
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 5),
		logger:      logger,
	}
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
