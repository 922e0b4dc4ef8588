package providers

import (
	"github.com/samber/do/v2"

	"github.com/foodnjam/foodnjam-server/internal/auth"
	"github.com/foodnjam/foodnjam-server/internal/images"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/pairing"
	"github.com/foodnjam/foodnjam-server/internal/service"
	"github.com/foodnjam/foodnjam-server/internal/validation"
)

// ProvideSessionService provides the session service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokens, log), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sessions := do.MustInvoke[*service.SessionService](i)
	validate := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, sessions, validate, log), nil
}

// ProvideSpotifyService provides the Spotify account service.
func ProvideSpotifyService(i do.Injector) (*service.SpotifyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	oauth := do.MustInvoke[*auth.SpotifyAuth](i)
	musicHandle := do.MustInvoke[*MusicClientHandle](i)
	cipher := do.MustInvoke[*auth.TokenCipher](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSpotifyService(storeHandle.Store, oauth, musicHandle.Client, cipher, log), nil
}

// ProvideCatalogService provides the meal catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	recipesHandle := do.MustInvoke[*RecipesClientHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	table := do.MustInvoke[*pairing.Table](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(recipesHandle.Client, cacheHandle.Cache, table, log), nil
}

// ProvidePairingService provides the pairing orchestrator.
func ProvidePairingService(i do.Injector) (*service.PairingService, error) {
	table := do.MustInvoke[*pairing.Table](i)
	catalog := do.MustInvoke[*service.CatalogService](i)
	musicHandle := do.MustInvoke[*MusicClientHandle](i)
	spotify := do.MustInvoke[*service.SpotifyService](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPairingService(table, catalog, musicHandle.Client, spotify,
		cacheHandle.Cache, pairing.DefaultRand(), log), nil
}

// ProvideFavoritesService provides the favorites service.
func ProvideFavoritesService(i do.Injector) (*service.FavoritesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	hasher := do.MustInvoke[*images.Hasher](i)
	validate := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoritesService(storeHandle.Store, hasher, validate, log), nil
}
