// Package di provides dependency injection configuration for versepace.
package di

import (
	"github.com/samber/do/v2"

	"github.com/versepace/versepace/internal/config"
	"github.com/versepace/versepace/internal/di/providers"
	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/logger"
	"github.com/versepace/versepace/internal/service"
	"github.com/versepace/versepace/internal/store"
	"github.com/versepace/versepace/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	Register(injector)
	return injector
}

// Register adds every provider except configuration, which the caller
// supplies.
func Register(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideLogOutput)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideStateRepository)

	// Corpus and search
	do.Provide(injector, providers.ProvideDocument)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideReadingService)
}

// Bootstrap initializes all services in dependency order. The first failing
// provider aborts startup; a corpus that cannot be loaded is reported before
// any store is opened.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*domain.Document](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*store.StateRepository](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*validation.Validator](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.ReadingService](injector); err != nil {
		return err
	}

	cfg := do.MustInvoke[*config.Config](injector)
	if cfg.App.Command == providers.CommandRead {
		if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
			return err
		}
		providers.TriggerSearchIndexing(injector)
	}

	return nil
}
