package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/normalize"
)

// maxSubjects caps how many subject labels become categories. Open
// Library records often carry dozens of noisy subject tags.
const maxSubjects = 3

// Lookup fetches metadata for an ISBN. The second return value reports
// whether Open Library knew the ISBN at all.
func (c *Client) Lookup(ctx context.Context, isbn string) (*domain.Book, bool, error) {
	if err := c.wait(ctx); err != nil {
		return nil, false, fmt.Errorf("rate limiter: %w", err)
	}

	bibkey := "ISBN:" + isbn
	params := url.Values{}
	params.Set("bibkeys", bibkey)
	params.Set("format", "json")
	params.Set("jscmd", "data")
	endpoint := fmt.Sprintf("%s/api/books?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("querying books api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("books api returned status %d", resp.StatusCode)
	}

	var result map[string]bookRecord
	if err := json.UnmarshalRead(resp.Body, &result); err != nil {
		return nil, false, fmt.Errorf("decoding response: %w", err)
	}

	record, ok := result[bibkey]
	if !ok {
		return nil, false, nil
	}

	book := bookFromRecord(isbn, record)
	if c.logger != nil {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "open library hit",
			slog.String("isbn", isbn),
			slog.String("title", book.Title))
	}
	return book, true, nil
}

func bookFromRecord(isbn string, record bookRecord) *domain.Book {
	coverURL := record.Cover.Medium
	if coverURL == "" {
		coverURL = record.Cover.Large
	}
	if coverURL == "" {
		coverURL = record.Cover.Small
	}
	coverURL = strings.Replace(coverURL, "http://", "https://", 1)

	subjects := record.Subjects
	if len(subjects) > maxSubjects {
		subjects = subjects[:maxSubjects]
	}

	return &domain.Book{
		ISBN:          isbn,
		Title:         normalize.Text(record.Title),
		Authors:       normalize.Text(joinNames(record.Authors)),
		Publisher:     normalize.Text(firstName(record.Publishers)),
		PublishedDate: record.PublishDate,
		PageCount:     record.NumberOfPages,
		Categories:    normalize.Text(joinNames(subjects)),
		CoverURL:      coverURL,
		ScannedAt:     time.Now(),
	}
}

func joinNames(items []named) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Name != "" {
			names = append(names, item.Name)
		}
	}
	return strings.Join(names, ", ")
}

func firstName(items []named) string {
	if len(items) == 0 {
		return ""
	}
	return items[0].Name
}
