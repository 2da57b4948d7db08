package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/normalize"
)

// containsHTML detects markup in volume descriptions. Google Books
// returns descriptions with embedded HTML for some volumes.
var containsHTML = regexp.MustCompile(`<[a-zA-Z/][^>]*>`)

// Lookup fetches metadata for an ISBN. The second return value reports
// whether the API knew the ISBN at all.
func (c *Client) Lookup(ctx context.Context, isbn string) (*domain.Book, bool, error) {
	if err := c.wait(ctx); err != nil {
		return nil, false, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", "isbn:"+isbn)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	endpoint := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("querying volumes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("volumes query returned status %d", resp.StatusCode)
	}

	var result volumesResponse
	if err := json.UnmarshalRead(resp.Body, &result); err != nil {
		return nil, false, fmt.Errorf("decoding response: %w", err)
	}

	if result.TotalItems == 0 || len(result.Items) == 0 {
		return nil, false, nil
	}

	book := c.bookFromVolume(isbn, result.Items[0].VolumeInfo)
	if c.logger != nil {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "google books hit",
			slog.String("isbn", isbn),
			slog.String("title", book.Title))
	}
	return book, true, nil
}

func (c *Client) bookFromVolume(isbn string, info volumeInfo) *domain.Book {
	coverURL := info.ImageLinks.Thumbnail
	if coverURL == "" {
		coverURL = info.ImageLinks.SmallThumbnail
	}
	if coverURL != "" {
		// Request the full-size image and force https; the API hands
		// out http thumbnail links.
		coverURL = strings.Replace(coverURL, "zoom=1", "zoom=0", 1)
		coverURL = strings.Replace(coverURL, "http://", "https://", 1)
	}

	description := info.Description
	if containsHTML.MatchString(description) {
		if converted, err := htmltomarkdown.ConvertString(description); err == nil {
			description = strings.TrimSpace(converted)
		}
	}

	return &domain.Book{
		ISBN:          isbn,
		Title:         normalize.Text(info.Title),
		Authors:       normalize.Text(strings.Join(info.Authors, ", ")),
		Publisher:     normalize.Text(info.Publisher),
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Categories:    normalize.Text(strings.Join(info.Categories, ", ")),
		Description:   description,
		CoverURL:      coverURL,
		ScannedAt:     time.Now(),
	}
}
