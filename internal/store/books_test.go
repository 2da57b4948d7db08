package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// newTestBook builds a resolved book record.
func newTestBook(isbn string) *domain.Book {
	return &domain.Book{
		ISBN:          isbn,
		Title:         "Test Book " + isbn,
		Authors:       "Test Author",
		Publisher:     "Test House",
		PublishedDate: "2016",
		PageCount:     320,
		Categories:    "Computers",
		CoverURL:      "https://covers.example.com/" + isbn + ".jpg",
		ScannedAt:     time.Now(),
	}
}

func TestAddBook(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Home")
	require.NoError(t, s.CreateProfile(ctx, p))

	added, err := s.AddBook(ctx, p.ID, newTestBook("9780134190440"))
	require.NoError(t, err)
	assert.True(t, added)

	ok, err := s.ContainsBook(ctx, p.ID, "9780134190440")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAddBook_DuplicateIsSilentNoop(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Home")
	require.NoError(t, s.CreateProfile(ctx, p))

	added, err := s.AddBook(ctx, p.ID, newTestBook("9780134190440"))
	require.NoError(t, err)
	assert.True(t, added)

	// Same isbn, different metadata: still a no-op, original record wins.
	dupe := newTestBook("9780134190440")
	dupe.Title = "Different Title"
	added, err = s.AddBook(ctx, p.ID, dupe)
	require.NoError(t, err)
	assert.False(t, added)

	books, err := s.ListBooks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Test Book 9780134190440", books[0].Title)
}

func TestListBooks_NewestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Home")
	require.NoError(t, s.CreateProfile(ctx, p))

	isbns := []string{"9780000000001", "9780000000002", "9780000000003"}
	for _, isbn := range isbns {
		_, err := s.AddBook(ctx, p.ID, newTestBook(isbn))
		require.NoError(t, err)
	}

	books, err := s.ListBooks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, books, 3)

	// Most recently scanned at the front.
	assert.Equal(t, "9780000000003", books[0].ISBN)
	assert.Equal(t, "9780000000002", books[1].ISBN)
	assert.Equal(t, "9780000000001", books[2].ISBN)
}

func TestListBooks_UnknownProfileIsEmpty(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	books, err := s.ListBooks(context.Background(), "prof-never-created")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRemoveBook(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Home")
	require.NoError(t, s.CreateProfile(ctx, p))

	_, err := s.AddBook(ctx, p.ID, newTestBook("9780134190440"))
	require.NoError(t, err)
	_, err = s.AddBook(ctx, p.ID, newTestBook("9780262033848"))
	require.NoError(t, err)

	require.NoError(t, s.RemoveBook(ctx, p.ID, "9780134190440"))

	books, err := s.ListBooks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "9780262033848", books[0].ISBN)

	// Removing an absent isbn is a no-op.
	require.NoError(t, s.RemoveBook(ctx, p.ID, "9780134190440"))
}

func TestClearBooks(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := newTestProfile("Home")
	require.NoError(t, s.CreateProfile(ctx, p))

	for i := range 5 {
		_, err := s.AddBook(ctx, p.ID, newTestBook(fmt.Sprintf("978000000000%d", i)))
		require.NoError(t, err)
	}

	require.NoError(t, s.ClearBooks(ctx, p.ID))

	books, err := s.ListBooks(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, books)

	// Clearing an already-empty collection succeeds.
	require.NoError(t, s.ClearBooks(ctx, p.ID))
}

func TestBooks_ProfileIsolation(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	home := newTestProfile("Home")
	office := newTestProfile("Office")
	require.NoError(t, s.CreateProfile(ctx, home))
	require.NoError(t, s.CreateProfile(ctx, office))

	_, err := s.AddBook(ctx, home.ID, newTestBook("9780134190440"))
	require.NoError(t, err)
	_, err = s.AddBook(ctx, office.ID, newTestBook("9780134190440"))
	require.NoError(t, err)

	// Same isbn may live in both profiles; clearing one leaves the other.
	require.NoError(t, s.ClearBooks(ctx, home.ID))

	ok, err := s.ContainsBook(ctx, office.ID, "9780134190440")
	require.NoError(t, err)
	assert.True(t, ok)
}
