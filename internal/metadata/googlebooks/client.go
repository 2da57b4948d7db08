// Package googlebooks queries the Google Books volumes API for
// bibliographic metadata by ISBN. It is the primary metadata provider.
package googlebooks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Options configures the client.
type Options struct {
	// BaseURL overrides the Google Books API root. Used by tests.
	BaseURL string

	// APIKey is optional; anonymous requests work within a lower quota.
	APIKey string

	// Timeout for a single lookup request. Defaults to 10s.
	Timeout time.Duration
}

// Client provides access to the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string
	apiKey      string
}

// NewClient creates a new Google Books client.
// Rate limited to 1 request per second with a small burst, which keeps a
// busy scanning session inside the anonymous quota.
func NewClient(logger *slog.Logger, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:      logger,
		baseURL:     opts.BaseURL,
		apiKey:      opts.APIKey,
	}
}

// Name identifies this provider in logs and resolver ordering.
func (c *Client) Name() string {
	return "google-books"
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
