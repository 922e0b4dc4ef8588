// Package di provides dependency injection configuration for the FoodnJam server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/foodnjam/foodnjam-server/internal/auth"
	"github.com/foodnjam/foodnjam-server/internal/config"
	"github.com/foodnjam/foodnjam-server/internal/di/providers"
	"github.com/foodnjam/foodnjam-server/internal/images"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/pairing"
	"github.com/foodnjam/foodnjam-server/internal/service"
	"github.com/foodnjam/foodnjam-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthKeys)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCache)

	// Upstream clients
	do.Provide(injector, providers.ProvideRecipesClient)
	do.Provide(injector, providers.ProvideMusicClient)
	do.Provide(injector, providers.ProvideImageHasher)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideTokenCipher)
	do.Provide(injector, providers.ProvideSpotifyAuth)

	// Pairing engine
	do.Provide(injector, providers.ProvidePairingTable)
	do.Provide(injector, providers.ProvideMappingWatcher)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideSpotifyService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvidePairingService)
	do.Provide(injector, providers.ProvideFavoritesService)

	// Workers
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*auth.Keys](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CacheHandle](injector)
	_ = do.MustInvoke[*providers.RecipesClientHandle](injector)
	_ = do.MustInvoke[*providers.MusicClientHandle](injector)
	_ = do.MustInvoke[*images.Hasher](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*auth.TokenCipher](injector)
	_ = do.MustInvoke[*auth.SpotifyAuth](injector)
	_ = do.MustInvoke[*pairing.Table](injector)
	_ = do.MustInvoke[*providers.MappingWatcherHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.SpotifyService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.PairingService](injector)
	_ = do.MustInvoke[*service.FavoritesService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
