package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/logger"
	"github.com/shelfmark/shelfmark-server/internal/metadata"
	"github.com/shelfmark/shelfmark-server/internal/service"
	"github.com/shelfmark/shelfmark-server/internal/sync"
)

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	books := do.MustInvoke[*service.BookService](i)
	tracker := do.MustInvoke[*sync.StatusTracker](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, books, tracker, log.Logger), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, indexHandle.Index, log.Logger), nil
}

// ProvideScanService provides the scan pipeline service.
func ProvideScanService(i do.Injector) (*service.ScanService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	books := do.MustInvoke[*service.BookService](i)
	resolver := do.MustInvoke[*metadata.Resolver](i)
	dispatcher := do.MustInvoke[*sync.Dispatcher](i)
	tracker := do.MustInvoke[*sync.StatusTracker](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewScanService(
		storeHandle.Store,
		books,
		resolver,
		dispatcher,
		tracker,
		cfg.Sync.Timeout,
		log.Logger,
	), nil
}
