package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

type bookListBody struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
}

func TestListBooks_NewestFirst(t *testing.T) {
	ts := setupTestServer(t, nil)
	ts.createTestProfile(t, "Shelf")

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/scan", map[string]any{"code": testISBN}).Code)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/scan", map[string]any{"code": anotherISBN}).Code)

	resp := ts.api.Get("/api/v1/books")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[bookListBody](t, resp)
	require.Equal(t, 2, envelope.Data.Total)
	assert.Equal(t, anotherISBN, envelope.Data.Books[0].ISBN)
	assert.Equal(t, testISBN, envelope.Data.Books[1].ISBN)
}

func TestListBooks_NoProfile(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/books")

	assert.Equal(t, http.StatusPreconditionFailed, resp.Code)
}

func TestRemoveBook(t *testing.T) {
	ts := setupTestServer(t, nil)
	ts.createTestProfile(t, "Shelf")

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/scan", map[string]any{"code": testISBN}).Code)

	resp := ts.api.Delete("/api/v1/books/" + testISBN)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	list := ts.api.Get("/api/v1/books")
	envelope := decodeEnvelope[bookListBody](t, list)
	assert.Zero(t, envelope.Data.Total)
}

func TestClearBooks(t *testing.T) {
	ts := setupTestServer(t, nil)
	ts.createTestProfile(t, "Shelf")

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/scan", map[string]any{"code": testISBN}).Code)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/scan", map[string]any{"code": anotherISBN}).Code)

	resp := ts.api.Delete("/api/v1/books")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	list := ts.api.Get("/api/v1/books")
	envelope := decodeEnvelope[bookListBody](t, list)
	assert.Zero(t, envelope.Data.Total)
}

func TestSearchBooks(t *testing.T) {
	ts := setupTestServer(t, &stubProvider{
		found: true,
		book: &domain.Book{
			Title:   "Introduction to Algorithms",
			Authors: "Thomas H. Cormen",
		},
	})
	ts.createTestProfile(t, "Shelf")

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/scan", map[string]any{"code": anotherISBN}).Code)

	resp := ts.api.Get("/api/v1/search?q=algorithms")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	type searchBody struct {
		Query string              `json:"query"`
		Total uint64              `json:"total"`
		Hits  []SearchHitResponse `json:"hits"`
	}
	envelope := decodeEnvelope[searchBody](t, resp)
	assert.Equal(t, "algorithms", envelope.Data.Query)
	require.Equal(t, uint64(1), envelope.Data.Total)
	assert.Equal(t, anotherISBN, envelope.Data.Hits[0].ISBN)
	assert.Equal(t, "Introduction to Algorithms", envelope.Data.Hits[0].Title)
}

func TestSearchBooks_MissingQuery(t *testing.T) {
	ts := setupTestServer(t, nil)
	ts.createTestProfile(t, "Shelf")

	resp := ts.api.Get("/api/v1/search")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestReindexBooks(t *testing.T) {
	ts := setupTestServer(t, &stubProvider{
		found: true,
		book:  &domain.Book{Title: "Some Book"},
	})
	ts.createTestProfile(t, "Shelf")

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/scan", map[string]any{"code": testISBN}).Code)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/scan", map[string]any{"code": anotherISBN}).Code)

	resp := ts.api.Post("/api/v1/books/reindex")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	type reindexBody struct {
		Documents uint64 `json:"documents"`
	}
	envelope := decodeEnvelope[reindexBody](t, resp)
	assert.Equal(t, uint64(2), envelope.Data.Documents)
}
