package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// Book operations, scoped to one profile id. Each profile's collection is
// its own JSON snapshot, newest-first, rewritten wholesale on mutation.

// ListBooks returns the profile's book collection, newest-first.
// A profile with no snapshot has an empty collection.
func (s *Store) ListBooks(ctx context.Context, profileID string) ([]domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := booksKey(profileID)
	defer releaseKey(key)

	var books []domain.Book
	err := s.get(key, &books)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []domain.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// AddBook prepends the record to the profile's collection. If a record with
// the same ISBN already exists the call is a silent no-op; the returned
// bool reports whether the record was actually added.
func (s *Store) AddBook(ctx context.Context, profileID string, book *domain.Book) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	added := false
	err := s.db.Update(func(txn *badger.Txn) error {
		key := booksKeyOwned(profileID)

		var books []domain.Book
		if err := getTxn(txn, key, &books); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		for i := range books {
			if books[i].ISBN == book.ISBN {
				return nil // idempotent
			}
		}

		books = append([]domain.Book{*book}, books...)
		added = true
		return setTxn(txn, key, books)
	})
	if err != nil {
		return false, fmt.Errorf("add book: %w", err)
	}

	if added && s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "book added",
			slog.String("isbn", book.ISBN),
			slog.String("title", book.Title),
			slog.String("profile_id", profileID),
		)
	}
	return added, nil
}

// RemoveBook deletes the matching record if present; no-op otherwise.
func (s *Store) RemoveBook(ctx context.Context, profileID, isbn string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := booksKeyOwned(profileID)

		var books []domain.Book
		if err := getTxn(txn, key, &books); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		kept := books[:0:0]
		for _, b := range books {
			if b.ISBN != isbn {
				kept = append(kept, b)
			}
		}
		if len(kept) == len(books) {
			return nil
		}
		return setTxn(txn, key, kept)
	})
	if err != nil {
		return fmt.Errorf("remove book: %w", err)
	}
	return nil
}

// ClearBooks deletes the entire collection for the profile.
func (s *Store) ClearBooks(ctx context.Context, profileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := booksKeyOwned(profileID)
		err := txn.Delete(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("clear books: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "books cleared",
			slog.String("profile_id", profileID),
		)
	}
	return nil
}

// ContainsBook reports whether the profile's collection already holds the
// identifier. Used for pre-scan duplicate detection.
func (s *Store) ContainsBook(ctx context.Context, profileID, isbn string) (bool, error) {
	books, err := s.ListBooks(ctx, profileID)
	if err != nil {
		return false, err
	}
	for i := range books {
		if books[i].ISBN == isbn {
			return true, nil
		}
	}
	return false, nil
}
