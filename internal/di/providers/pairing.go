package providers

import (
	"github.com/samber/do/v2"

	"github.com/foodnjam/foodnjam-server/internal/config"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/pairing"
)

// ProvidePairingTable provides the cuisine-genre table, preferring the
// configured mapping file over the embedded one.
func ProvidePairingTable(i do.Injector) (*pairing.Table, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Pairing.MappingPath == "" {
		return pairing.NewTable()
	}

	table, err := pairing.NewTableFromFile(cfg.Pairing.MappingPath)
	if err != nil {
		return nil, err
	}

	log.Info("Pairing table loaded from file", "path", cfg.Pairing.MappingPath)

	return table, nil
}

// MappingWatcherHandle wraps the mapping file watcher with shutdown capability.
// Watcher is nil when no mapping file is configured.
type MappingWatcherHandle struct {
	Watcher *pairing.MappingWatcher
}

// Shutdown implements do.Shutdownable.
func (h *MappingWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	return h.Watcher.Close()
}

// ProvideMappingWatcher provides the hot-reload watcher for the mapping file.
func ProvideMappingWatcher(i do.Injector) (*MappingWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Pairing.MappingPath == "" {
		return &MappingWatcherHandle{}, nil
	}

	table := do.MustInvoke[*pairing.Table](i)

	w, err := pairing.NewMappingWatcher(table, cfg.Pairing.MappingPath, log)
	if err != nil {
		return nil, err
	}

	log.Info("Watching pairing mapping for changes", "path", cfg.Pairing.MappingPath)

	return &MappingWatcherHandle{Watcher: w}, nil
}
