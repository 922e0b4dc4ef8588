package auth

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foodnjam/foodnjam-server/internal/config"
	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/logger"
)

const (
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	// RefreshThreshold is how long before expiry an access token is
	// refreshed proactively, so in-flight requests don't race the
	// expiration.
	RefreshThreshold = 300 * time.Second
)

// SpotifyAuth exchanges and refreshes Spotify OAuth tokens. The mobile
// client runs the authorization-code + PKCE flow and hands the code to
// the server, which performs the exchange and keeps the tokens.
type SpotifyAuth struct {
	http     *http.Client
	tokenURL string
	cfg      config.SpotifyConfig
	log      *logger.Logger
}

// NewSpotifyAuth creates the OAuth client against the public Spotify
// accounts service.
func NewSpotifyAuth(cfg config.SpotifyConfig, log *logger.Logger) *SpotifyAuth {
	return NewSpotifyAuthWithTokenURL(defaultTokenURL, cfg, log)
}

// NewSpotifyAuthWithTokenURL creates the client against a custom token
// endpoint. Used by tests with an httptest server.
func NewSpotifyAuthWithTokenURL(tokenURL string, cfg config.SpotifyConfig, log *logger.Logger) *SpotifyAuth {
	return &SpotifyAuth{
		http:     &http.Client{Timeout: 15 * time.Second},
		tokenURL: tokenURL,
		cfg:      cfg,
		log:      log,
	}
}

// tokenResponse mirrors the accounts service token payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// ExchangeCode trades an authorization code (plus the client's PKCE
// verifier) for an access and refresh token pair.
func (s *SpotifyAuth) ExchangeCode(ctx context.Context, code, codeVerifier string) (*domain.SpotifyTokens, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", s.cfg.RedirectURI)
	form.Set("client_id", s.cfg.ClientID)
	if codeVerifier != "" {
		form.Set("code_verifier", codeVerifier)
	}

	return s.requestTokens(ctx, form)
}

// Refresh trades a refresh token for a fresh access token. Spotify may
// rotate the refresh token; when it doesn't, the old one is kept.
func (s *SpotifyAuth) Refresh(ctx context.Context, refreshToken string) (*domain.SpotifyTokens, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", s.cfg.ClientID)

	tokens, err := s.requestTokens(ctx, form)
	if err != nil {
		return nil, err
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return tokens, nil
}

func (s *SpotifyAuth) requestTokens(ctx context.Context, form url.Values) (*domain.SpotifyTokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Secret-based auth only applies when the app is registered as
	// confidential; PKCE-only apps send just the client id.
	if s.cfg.ClientSecret != "" {
		req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	}

	s.log.Debug("spotify token request", "grant_type", form.Get("grant_type"))

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("spotify token endpoint: %s: %s", apiErr.Error, apiErr.ErrorDescription)
		}
		return nil, fmt.Errorf("spotify token endpoint: unexpected status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("spotify token endpoint: empty access token")
	}

	now := time.Now()
	return &domain.SpotifyTokens{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		Scope:        tr.Scope,
		ExpiresAt:    now.Add(time.Duration(tr.ExpiresIn) * time.Second),
		UpdatedAt:    now,
	}, nil
}
