package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/logger"
	"github.com/shelfmark/shelfmark-server/internal/metadata"
	"github.com/shelfmark/shelfmark-server/internal/metadata/googlebooks"
	"github.com/shelfmark/shelfmark-server/internal/metadata/openlibrary"
)

// ProvideGoogleBooksClient provides the Google Books API client.
func ProvideGoogleBooksClient(i do.Injector) (*googlebooks.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := googlebooks.NewClient(log.Logger, googlebooks.Options{
		BaseURL: cfg.Resolver.GoogleBooksBaseURL,
		APIKey:  cfg.Resolver.GoogleBooksAPIKey,
		Timeout: cfg.Resolver.Timeout,
	})
	log.Info("Google Books client initialized", "keyed", cfg.Resolver.GoogleBooksAPIKey != "")

	return client, nil
}

// ProvideOpenLibraryClient provides the Open Library API client.
func ProvideOpenLibraryClient(i do.Injector) (*openlibrary.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := openlibrary.NewClient(log.Logger, openlibrary.Options{
		BaseURL: cfg.Resolver.OpenLibraryBaseURL,
		Timeout: cfg.Resolver.Timeout,
	})
	log.Info("Open Library client initialized")

	return client, nil
}

// ProvideResolver provides the metadata resolver with the provider
// chain in priority order: Google Books first, Open Library second.
func ProvideResolver(i do.Injector) (*metadata.Resolver, error) {
	log := do.MustInvoke[*logger.Logger](i)
	google := do.MustInvoke[*googlebooks.Client](i)
	openLib := do.MustInvoke[*openlibrary.Client](i)

	return metadata.NewResolver(log.Logger, google, openLib), nil
}
