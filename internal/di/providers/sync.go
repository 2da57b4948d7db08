package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/logger"
	"github.com/shelfmark/shelfmark-server/internal/sync"
)

// ProvideDispatcher provides the spreadsheet sync dispatcher.
func ProvideDispatcher(i do.Injector) (*sync.Dispatcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return sync.NewDispatcher(log.Logger, cfg.Sync.Timeout), nil
}

// ProvideStatusTracker provides the per-session sync status tracker.
func ProvideStatusTracker(i do.Injector) (*sync.StatusTracker, error) {
	return sync.NewStatusTracker(), nil
}
