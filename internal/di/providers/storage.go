package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/versepace/versepace/internal/config"
	"github.com/versepace/versepace/internal/corpus"
	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/logger"
	"github.com/versepace/versepace/internal/store"
	"github.com/versepace/versepace/internal/store/sqlite"
)

// StoreHandle wraps the key-value store with shutdown capability.
type StoreHandle struct {
	store.KV
	Driver string
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the key-value store selected by the configured driver.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		kv   store.KV
		path string
		err  error
	)
	if err := os.MkdirAll(cfg.Data.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	switch cfg.Store.Driver {
	case config.StoreSQLite:
		path = cfg.SQLitePath()
		kv, err = sqlite.Open(path, log.Logger)
	default:
		path = cfg.BadgerPath()
		kv, err = store.New(path, log.Logger)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Store initialized", "driver", cfg.Store.Driver, "path", path)

	return &StoreHandle{KV: kv, Driver: cfg.Store.Driver}, nil
}

// ProvideStateRepository provides the reading state repository.
func ProvideStateRepository(i do.Injector) (*store.StateRepository, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return store.NewStateRepository(storeHandle.KV, log.Logger), nil
}

// ProvideDocument loads and parses the scripture corpus. A load failure is
// fatal for the container and never touches persisted progress.
func ProvideDocument(i do.Injector) (*domain.Document, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	loader := corpus.NewLoader(cfg.Corpus.Encoding, log.Logger)
	return loader.Load(ctx, cfg.Corpus.Path)
}
