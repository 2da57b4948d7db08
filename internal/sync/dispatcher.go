// Package sync forwards scanned book records to a profile's external
// spreadsheet endpoint and tracks per-ISBN sync outcomes for the
// active profile.
package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// Dispatcher issues fire-and-forget record uploads. A true result means
// only that the request left this process without a transport error;
// the remote response is deliberately not interpreted, so it is never a
// delivery acknowledgment.
type Dispatcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDispatcher creates a dispatcher with the given per-request timeout.
func NewDispatcher(logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Dispatch sends one record to the endpoint as a GET whose query
// carries the record's fields. Transport errors are converted to a
// false result; no retry.
func (d *Dispatcher) Dispatch(ctx context.Context, endpoint, sheetName string, book *domain.Book) bool {
	params := url.Values{}
	params.Set("sheet", sheetName)
	params.Set("isbn", book.ISBN)
	params.Set("title", book.Title)
	params.Set("authors", book.Authors)
	params.Set("publisher", book.Publisher)
	params.Set("publishedDate", book.PublishedDate)
	params.Set("pageCount", strconv.Itoa(book.PageCount))
	params.Set("categories", book.Categories)
	params.Set("scannedAt", book.ScannedAt.Format(time.RFC3339))

	target := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		d.logFailure(ctx, book.ISBN, err)
		return false
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logFailure(ctx, book.ISBN, err)
		return false
	}
	// The Apps Script endpoint answers through redirects that carry no
	// machine-readable result. Drain and ignore.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if d.logger != nil {
		d.logger.LogAttrs(ctx, slog.LevelDebug, "sync request issued",
			slog.String("isbn", book.ISBN))
	}
	return true
}

func (d *Dispatcher) logFailure(ctx context.Context, isbn string, err error) {
	if d.logger == nil {
		return
	}
	d.logger.LogAttrs(ctx, slog.LevelWarn, "sync dispatch failed",
		slog.String("isbn", isbn),
		slog.String("error", err.Error()))
}
