package providers

import (
	"github.com/samber/do/v2"

	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/logger"
	"github.com/versepace/versepace/internal/service"
	"github.com/versepace/versepace/internal/store"
	"github.com/versepace/versepace/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideReadingService provides the reading session service.
func ProvideReadingService(i do.Injector) (*service.ReadingService, error) {
	repo := do.MustInvoke[*store.StateRepository](i)
	doc := do.MustInvoke[*domain.Document](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReadingService(repo, doc, validator, log.Logger), nil
}
