package providers

import (
	"github.com/samber/do/v2"

	"github.com/readnextapp/readnext-server/internal/auth"
	"github.com/readnextapp/readnext-server/internal/config"
	"github.com/readnextapp/readnext-server/internal/logger"
	"github.com/readnextapp/readnext-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideBookService provides the reading history service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, log.Logger), nil
}

// ProvideRecommendationService provides the recommendation service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendationService(storeHandle.Store, log.Logger), nil
}

// ProvideCoverService provides the cover image service.
func ProvideCoverService(i do.Injector) (*service.CoverService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	generatorHandle := do.MustInvoke[*CoverGeneratorHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCoverService(
		storeHandle.Store,
		generatorHandle.CoverGenerator,
		cfg.Covers.MaxConcurrent,
		cfg.Covers.RequestTimeout,
		log.Logger,
	), nil
}
