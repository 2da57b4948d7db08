package service

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/search"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// BookService manages a profile's book collection and keeps the search
// index in step with the store.
type BookService struct {
	store  *store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(s *store.Store, index *search.Index, logger *slog.Logger) *BookService {
	return &BookService{
		store:  s,
		index:  index,
		logger: logger,
	}
}

// List returns a profile's books, newest scan first.
func (s *BookService) List(ctx context.Context, profileID string) ([]domain.Book, error) {
	return s.store.ListBooks(ctx, profileID)
}

// Contains reports whether the profile already holds an ISBN.
func (s *BookService) Contains(ctx context.Context, profileID, isbn string) (bool, error) {
	return s.store.ContainsBook(ctx, profileID, isbn)
}

// Add persists a book into a profile's collection and indexes it.
// Adding an ISBN the profile already holds is a no-op; the original
// record and its index entry stay untouched.
func (s *BookService) Add(ctx context.Context, profileID string, book *domain.Book) (bool, error) {
	added, err := s.store.AddBook(ctx, profileID, book)
	if err != nil || !added {
		return added, err
	}
	if err := s.index.IndexBook(profileID, book); err != nil {
		// The store is the source of truth; a failed index write is
		// recoverable via reindex, not a reason to fail the scan.
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to index book",
				slog.String("isbn", book.ISBN),
				slog.String("error", err.Error()))
		}
	}
	return true, nil
}

// Remove deletes one book from a profile's collection and the index.
func (s *BookService) Remove(ctx context.Context, profileID, isbn string) error {
	if err := s.store.RemoveBook(ctx, profileID, isbn); err != nil {
		return err
	}
	if err := s.index.DeleteBook(profileID, isbn); err != nil {
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to deindex book",
				slog.String("isbn", isbn),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// Clear empties a profile's collection and removes its index entries.
func (s *BookService) Clear(ctx context.Context, profileID string) error {
	books, err := s.store.ListBooks(ctx, profileID)
	if err != nil {
		return err
	}
	if err := s.store.ClearBooks(ctx, profileID); err != nil {
		return err
	}
	s.Deindex(ctx, profileID, books)
	return nil
}

// Deindex drops the index documents for the given books. The profile
// delete cascade calls this with the list it captured before the store
// snapshot was removed; a failed delete is recoverable via reindex.
func (s *BookService) Deindex(ctx context.Context, profileID string, books []domain.Book) {
	isbns := make([]string, 0, len(books))
	for i := range books {
		isbns = append(isbns, books[i].ISBN)
	}
	if err := s.index.DeleteBooks(profileID, isbns); err != nil {
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to deindex books",
				slog.String("profile_id", profileID),
				slog.String("error", err.Error()))
		}
	}
}

// Search runs a full-text query over one profile's books.
func (s *BookService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// IndexedCount returns the number of documents in the search index.
func (s *BookService) IndexedCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Reindex rebuilds the search index from the store. Run at startup
// after a mapping change wiped the index, and available on demand.
func (s *BookService) Reindex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return err
	}

	profiles, err := s.store.ListProfiles(ctx)
	if err != nil {
		return err
	}
	for i := range profiles {
		books, err := s.store.ListBooks(ctx, profiles[i].ID)
		if err != nil {
			return err
		}
		if len(books) == 0 {
			continue
		}
		if err := s.index.IndexBooks(profiles[i].ID, books); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "search index rebuilt",
			slog.Int("profiles", len(profiles)))
	}
	return nil
}
