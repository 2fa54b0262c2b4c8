// Package di provides dependency injection configuration for the ReadNext server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/readnextapp/readnext-server/internal/auth"
	"github.com/readnextapp/readnext-server/internal/config"
	"github.com/readnextapp/readnext-server/internal/di/providers"
	"github.com/readnextapp/readnext-server/internal/logger"
	"github.com/readnextapp/readnext-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Outbound clients
	do.Provide(injector, providers.ProvideCoverGenerator)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideRecommendationService)
	do.Provide(injector, providers.ProvideCoverService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CoverGeneratorHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)
	_ = do.MustInvoke[*service.CoverService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
