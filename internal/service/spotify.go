package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodnjam/foodnjam-server/internal/auth"
	"github.com/foodnjam/foodnjam-server/internal/domain"
	apperrors "github.com/foodnjam/foodnjam-server/internal/errors"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/music"
	"github.com/foodnjam/foodnjam-server/internal/store"
)

// SpotifyService links Spotify accounts and hands out fresh access
// tokens. Tokens are encrypted before they hit the store and refreshed
// transparently when near expiry.
type SpotifyService struct {
	store   store.Store
	oauth   *auth.SpotifyAuth
	catalog *music.Client
	cipher  *auth.TokenCipher
	log     *logger.Logger
}

// NewSpotifyService creates a new Spotify account service.
func NewSpotifyService(st store.Store, oauth *auth.SpotifyAuth, catalog *music.Client, cipher *auth.TokenCipher, log *logger.Logger) *SpotifyService {
	return &SpotifyService{
		store:   st,
		oauth:   oauth,
		catalog: catalog,
		cipher:  cipher,
		log:     log,
	}
}

// Link exchanges an authorization code for tokens and attaches the
// Spotify account to the user. Returns the updated user.
func (s *SpotifyService) Link(ctx context.Context, userID, code, codeVerifier string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	tokens, err := s.oauth.ExchangeCode(ctx, code, codeVerifier)
	if err != nil {
		return nil, apperrors.Unauthorized("spotify authorization failed").WithCause(err)
	}
	tokens.UserID = userID

	profile, err := s.catalog.GetCurrentUser(ctx, tokens.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch spotify profile: %w", err)
	}

	if err := s.saveTokens(ctx, tokens); err != nil {
		return nil, err
	}

	user.SpotifyUserID = profile.ID
	user.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("spotify account linked", "user_id", userID, "spotify_user_id", profile.ID)

	return user, nil
}

// Unlink removes the user's Spotify credentials and account binding.
func (s *SpotifyService) Unlink(ctx context.Context, userID string) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("user not found")
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := s.store.DeleteSpotifyTokens(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete tokens: %w", err)
	}

	user.SpotifyUserID = ""
	user.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.log.Info("spotify account unlinked", "user_id", userID)

	return nil
}

// AccessToken returns a valid Spotify access token for the user,
// refreshing it first when it is within the refresh threshold.
func (s *SpotifyService) AccessToken(ctx context.Context, userID string) (string, error) {
	stored, err := s.store.GetSpotifyTokens(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperrors.Forbidden("spotify account not linked")
		}
		return "", fmt.Errorf("lookup tokens: %w", err)
	}

	accessToken, err := s.cipher.Decrypt(stored.AccessToken)
	if err != nil {
		return "", fmt.Errorf("decrypt access token: %w", err)
	}

	if !stored.NeedsRefresh(time.Now(), auth.RefreshThreshold) {
		return accessToken, nil
	}

	refreshToken, err := s.cipher.Decrypt(stored.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("decrypt refresh token: %w", err)
	}

	fresh, err := s.oauth.Refresh(ctx, refreshToken)
	if err != nil {
		return "", apperrors.Unauthorized("spotify session expired, please relink").WithCause(err)
	}
	fresh.UserID = userID
	if fresh.Scope == "" {
		fresh.Scope = stored.Scope
	}

	if err := s.saveTokens(ctx, fresh); err != nil {
		return "", err
	}

	s.log.Debug("spotify token refreshed", "user_id", userID)

	return fresh.AccessToken, nil
}

// saveTokens encrypts and persists a token set. The input is not
// mutated; encryption happens on a copy.
func (s *SpotifyService) saveTokens(ctx context.Context, tokens *domain.SpotifyTokens) error {
	encAccess, err := s.cipher.Encrypt(tokens.AccessToken)
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}
	encRefresh, err := s.cipher.Encrypt(tokens.RefreshToken)
	if err != nil {
		return fmt.Errorf("encrypt refresh token: %w", err)
	}

	record := *tokens
	record.AccessToken = encAccess
	record.RefreshToken = encRefresh
	record.UpdatedAt = time.Now()

	if err := s.store.UpsertSpotifyTokens(ctx, &record); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

// Playlists lists the user's Spotify playlists.
func (s *SpotifyService) Playlists(ctx context.Context, userID string) ([]domain.PlaylistRef, error) {
	token, err := s.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.catalog.GetUserPlaylists(ctx, token)
}

// GetPlaylist fetches one playlist by ID on behalf of the user.
func (s *SpotifyService) GetPlaylist(ctx context.Context, userID, playlistID string) (*domain.PlaylistRef, error) {
	token, err := s.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	playlist, err := s.catalog.GetPlaylist(ctx, token, playlistID)
	if err != nil {
		if errors.Is(err, music.ErrNotFound) {
			return nil, apperrors.NotFound("playlist not found")
		}
		return nil, err
	}
	return playlist, nil
}

// SearchPlaylists searches Spotify playlists on behalf of the user.
func (s *SpotifyService) SearchPlaylists(ctx context.Context, userID, query string) ([]domain.PlaylistRef, error) {
	token, err := s.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.catalog.SearchPlaylists(ctx, token, query)
}
