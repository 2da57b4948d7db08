// Package metadata resolves scanned ISBNs into book records by querying
// bibliographic providers in priority order.
package metadata

import (
	"context"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// Provider is a single bibliographic source queried by ISBN.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Lookup fetches metadata for an ISBN. The bool reports whether the
	// provider knew the ISBN; err covers transport and decoding failures.
	Lookup(ctx context.Context, isbn string) (*domain.Book, bool, error)
}

// Resolver queries providers in order and takes the first hit. It never
// fails: when every provider misses or errors, it produces an
// unidentified record carrying only the ISBN so the scan can proceed.
type Resolver struct {
	providers []Provider
	logger    *slog.Logger
}

// NewResolver creates a resolver over the given providers. Order is
// priority order.
func NewResolver(logger *slog.Logger, providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		logger:    logger,
	}
}

// Resolve looks up an ISBN across all providers. Provider errors are
// logged and treated as misses; later providers still run.
func (r *Resolver) Resolve(ctx context.Context, isbn string) *domain.Book {
	for _, provider := range r.providers {
		book, found, err := provider.Lookup(ctx, isbn)
		if err != nil {
			if r.logger != nil {
				r.logger.LogAttrs(ctx, slog.LevelWarn, "metadata provider failed",
					slog.String("provider", provider.Name()),
					slog.String("isbn", isbn),
					slog.String("error", err.Error()))
			}
			continue
		}
		if found {
			return book
		}
	}

	if r.logger != nil {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "isbn not identified by any provider",
			slog.String("isbn", isbn))
	}
	return &domain.Book{
		ISBN:      isbn,
		ScannedAt: time.Now(),
	}
}
