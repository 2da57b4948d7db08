package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query. ProfileID is mandatory; results
// never cross profile boundaries.
type Params struct {
	Query     string
	ProfileID string

	Limit  int
	Offset int

	SortBy    string // "relevance", "title", "recent"
	SortOrder string // "asc", "desc"

	Highlight bool
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		SortOrder: "desc",
		Highlight: true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single matched book.
type Hit struct {
	ISBN       string            `json:"isbn"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Authors    string            `json:"authors,omitempty"`
	Publisher  string            `json:"publisher,omitempty"`
	Categories string            `json:"categories,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a query scoped to one profile.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	addSorting(searchRequest, params)

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("authors")
	}

	searchRequest.Fields = []string{
		"isbn", "title", "authors", "publisher", "categories",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := Hit{
			Score: hit.Score,
		}
		if v, ok := hit.Fields["isbn"].(string); ok {
			searchHit.ISBN = v
		}
		if v, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = v
		}
		if v, ok := hit.Fields["authors"].(string); ok {
			searchHit.Authors = v
		}
		if v, ok := hit.Fields["publisher"].(string); ok {
			searchHit.Publisher = v
		}
		if v, ok := hit.Fields["categories"].(string); ok {
			searchHit.Categories = v
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params. The text
// portion matches titles (boosted), authors, and categories, with a
// fuzzy title clause for typo tolerance and a prefix clause for
// search-as-you-type.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		textQueries := []query.Query{}

		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		authorsMatch := bleve.NewMatchQuery(params.Query)
		authorsMatch.SetField("authors")
		authorsMatch.SetBoost(1.5)
		textQueries = append(textQueries, authorsMatch)

		categoriesMatch := bleve.NewMatchQuery(params.Query)
		categoriesMatch.SetField("categories")
		textQueries = append(textQueries, categoriesMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Profile scope is a hard filter, never optional.
	profileQuery := bleve.NewTermQuery(params.ProfileID)
	profileQuery.SetField("profile_id")
	queries = append(queries, profileQuery)

	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "title":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-title"})
		} else {
			req.SortBy([]string{"title"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"scanned_at"})
		} else {
			req.SortBy([]string{"-scanned_at"})
		}
	default:
		req.SortBy([]string{"-_score"})
	}
}
