package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/versepace/versepace/internal/config"
	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/errors"
	"github.com/versepace/versepace/internal/logger"
	"github.com/versepace/versepace/internal/search"
)

// SearchIndexHandle wraps the verse index with shutdown capability.
// VerseIndex is nil when search is disabled.
type SearchIndexHandle struct {
	*search.VerseIndex

	// Set by TriggerSearchIndexing; Shutdown stops background indexing
	// before closing the index.
	cancel context.CancelFunc
	done   chan struct{}
}

// Enabled reports whether a verse index is available.
func (h *SearchIndexHandle) Enabled() bool {
	return h.VerseIndex != nil
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	if h.VerseIndex == nil {
		return nil
	}
	if h.cancel != nil {
		h.cancel()
		<-h.done
	}
	return h.Close()
}

// ProvideSearchIndex provides the Bleve verse index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Info("Search disabled")
		return &SearchIndexHandle{}, nil
	}

	index, err := search.NewVerseIndex(search.Options{
		DataPath: cfg.SearchPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount, "persisted", cfg.Search.Persist)

	return &SearchIndexHandle{VerseIndex: index}, nil
}

// TriggerSearchIndexing fills the verse index in the background when it does
// not already hold the loaded corpus. Searches issued meanwhile wait on the
// index lock or see a partial result. Shutdown cancels an unfinished build.
func TriggerSearchIndexing(i do.Injector) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	if !indexHandle.Enabled() || indexHandle.cancel != nil {
		return
	}
	doc := do.MustInvoke[*domain.Document](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	indexHandle.cancel = cancel
	indexHandle.done = make(chan struct{})

	go func() {
		defer close(indexHandle.done)
		err := indexHandle.EnsureIndexed(ctx, doc)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			log.Info("Search indexing cancelled")
		default:
			log.Error("Search indexing failed", "error", err)
		}
	}()
}
