// Package openlibrary queries the Open Library books API. It serves as
// the fallback metadata provider when Google Books has no record.
package openlibrary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://openlibrary.org"

// Options configures the client.
type Options struct {
	// BaseURL overrides the Open Library root. Used by tests.
	BaseURL string

	// Timeout for a single lookup request. Defaults to 10s.
	Timeout time.Duration
}

// Client provides access to the Open Library books API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string
}

// NewClient creates a new Open Library client. Open Library asks for at
// most one request per second from unauthenticated callers.
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
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:      logger,
		baseURL:     opts.BaseURL,
	}
}

// Name identifies this provider in logs and resolver ordering.
func (c *Client) Name() string {
	return "open-library"
}

func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
