package providers

import (
	"github.com/samber/do/v2"

	"github.com/foodnjam/foodnjam-server/internal/auth"
	"github.com/foodnjam/foodnjam-server/internal/config"
	"github.com/foodnjam/foodnjam-server/internal/logger"
)

// ProvideAuthKeys loads or generates the server's symmetric keys.
func ProvideAuthKeys(i do.Injector) (*auth.Keys, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keys, err := auth.LoadOrGenerateKeys(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	cfg.Auth.AccessTokenKey = keys.AccessToken

	log.Info("Authentication keys loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"refresh_token_duration", cfg.Auth.RefreshTokenDuration,
	)

	return keys, nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	keys := do.MustInvoke[*auth.Keys](i)

	return auth.NewTokenService(keys.AccessToken, cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
}

// ProvideTokenCipher provides the cipher for Spotify tokens at rest.
func ProvideTokenCipher(i do.Injector) (*auth.TokenCipher, error) {
	keys := do.MustInvoke[*auth.Keys](i)
	return auth.NewTokenCipher(keys.TokenCipher)
}

// ProvideSpotifyAuth provides the Spotify OAuth client.
func ProvideSpotifyAuth(i do.Injector) (*auth.SpotifyAuth, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return auth.NewSpotifyAuth(cfg.Spotify, log), nil
}
