package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/search"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns the active profile's books, newest scan first",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeBook",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{isbn}",
		Summary:       "Remove book",
		Description:   "Removes one book from the active profile's collection",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemoveBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "clearBooks",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books",
		Summary:       "Clear books",
		Description:   "Empties the active profile's collection",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleClearBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search books",
		Description: "Full-text search over the active profile's books",
		Tags:        []string{"Books"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "reindexBooks",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/reindex",
		Summary:     "Rebuild search index",
		Description: "Rebuilds the full-text index from the book store",
		Tags:        []string{"Books"},
	}, s.handleReindexBooks)
}

// === Request/Response Types ===

// BookResponse contains one scanned book.
type BookResponse struct {
	ISBN          string    `json:"isbn" doc:"Normalized ISBN"`
	Title         string    `json:"title,omitempty" doc:"Title, empty when unidentified"`
	Authors       string    `json:"authors,omitempty" doc:"Comma-joined author names"`
	Publisher     string    `json:"publisher,omitempty" doc:"Publisher name"`
	PublishedDate string    `json:"published_date,omitempty" doc:"Publication date as reported by the provider"`
	Description   string    `json:"description,omitempty" doc:"Description in Markdown"`
	PageCount     int       `json:"page_count,omitempty" doc:"Number of pages"`
	Categories    string    `json:"categories,omitempty" doc:"Comma-joined subject categories"`
	CoverURL      string    `json:"cover_url,omitempty" doc:"Cover image URL"`
	ScannedAt     time.Time `json:"scanned_at" doc:"When the book was scanned"`
}

// BookListOutput wraps the book list.
type BookListOutput struct {
	Body struct {
		Books []BookResponse `json:"books" doc:"Books, newest scan first"`
		Total int            `json:"total" doc:"Number of books in the collection"`
	}
}

// BookISBNInput addresses one book by ISBN.
type BookISBNInput struct {
	ISBN string `path:"isbn" doc:"Normalized ISBN"`
}

// RemoveBookOutput is an empty 204 response.
type RemoveBookOutput struct{}

// SearchBooksInput contains the search query parameters.
type SearchBooksInput struct {
	Query     string `query:"q" required:"true" minLength:"1" doc:"Search query"`
	Limit     int    `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum hits to return"`
	Offset    int    `query:"offset" minimum:"0" doc:"Hits to skip"`
	Sort      string `query:"sort" enum:"relevance,title,recent" default:"relevance" doc:"Sort order"`
	Highlight bool   `query:"highlight" doc:"Include match highlights"`
}

// SearchHitResponse is one search result.
type SearchHitResponse struct {
	ISBN       string            `json:"isbn" doc:"Normalized ISBN"`
	Score      float64           `json:"score" doc:"Relevance score"`
	Title      string            `json:"title,omitempty" doc:"Title"`
	Authors    string            `json:"authors,omitempty" doc:"Comma-joined author names"`
	Publisher  string            `json:"publisher,omitempty" doc:"Publisher name"`
	Categories string            `json:"categories,omitempty" doc:"Comma-joined subject categories"`
	Highlights map[string]string `json:"highlights,omitempty" doc:"Highlighted fragment per field"`
}

// SearchBooksOutput wraps the search results.
type SearchBooksOutput struct {
	Body struct {
		Query  string              `json:"query" doc:"Query as executed"`
		Total  uint64              `json:"total" doc:"Total matching documents"`
		TookMs int64               `json:"took_ms" doc:"Query execution time in milliseconds"`
		Hits   []SearchHitResponse `json:"hits" doc:"Matching books"`
	}
}

// ReindexOutput reports the rebuilt index size.
type ReindexOutput struct {
	Body struct {
		Documents uint64 `json:"documents" doc:"Documents in the rebuilt index"`
	}
}

func bookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ISBN:          b.ISBN,
		Title:         b.Title,
		Authors:       b.Authors,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		Description:   b.Description,
		PageCount:     b.PageCount,
		Categories:    b.Categories,
		CoverURL:      b.CoverURL,
		ScannedAt:     b.ScannedAt,
	}
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*BookListOutput, error) {
	profile, err := s.profiles.Active(ctx)
	if err != nil {
		return nil, err
	}

	books, err := s.books.List(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	out := &BookListOutput{}
	out.Body.Books = make([]BookResponse, 0, len(books))
	for i := range books {
		out.Body.Books = append(out.Body.Books, bookResponse(&books[i]))
	}
	out.Body.Total = len(books)
	return out, nil
}

func (s *Server) handleRemoveBook(ctx context.Context, input *BookISBNInput) (*RemoveBookOutput, error) {
	profile, err := s.profiles.Active(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.books.Remove(ctx, profile.ID, input.ISBN); err != nil {
		return nil, err
	}
	return &RemoveBookOutput{}, nil
}

func (s *Server) handleClearBooks(ctx context.Context, _ *struct{}) (*RemoveBookOutput, error) {
	profile, err := s.profiles.Active(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.books.Clear(ctx, profile.ID); err != nil {
		return nil, err
	}
	return &RemoveBookOutput{}, nil
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*SearchBooksOutput, error) {
	profile, err := s.profiles.Active(ctx)
	if err != nil {
		return nil, err
	}

	params := search.DefaultParams()
	params.Query = input.Query
	params.ProfileID = profile.ID
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset
	params.Highlight = input.Highlight
	if input.Sort != "" {
		params.SortBy = input.Sort
	}

	result, err := s.books.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	out := &SearchBooksOutput{}
	out.Body.Query = result.Query
	out.Body.Total = result.Total
	out.Body.TookMs = result.TookMs
	out.Body.Hits = make([]SearchHitResponse, 0, len(result.Hits))
	for _, hit := range result.Hits {
		out.Body.Hits = append(out.Body.Hits, SearchHitResponse{
			ISBN:       hit.ISBN,
			Score:      hit.Score,
			Title:      hit.Title,
			Authors:    hit.Authors,
			Publisher:  hit.Publisher,
			Categories: hit.Categories,
			Highlights: hit.Highlights,
		})
	}
	return out, nil
}

func (s *Server) handleReindexBooks(ctx context.Context, _ *struct{}) (*ReindexOutput, error) {
	if err := s.books.Reindex(ctx); err != nil {
		return nil, err
	}

	out := &ReindexOutput{}
	count, err := s.books.IndexedCount()
	if err != nil {
		return nil, err
	}
	out.Body.Documents = count
	return out, nil
}
