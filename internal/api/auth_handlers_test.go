package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndGetProfile(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        "alice@example.com",
		"password":     "correct horse battery",
		"display_name": "Alice",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())
	assert.Equal(t, 1, env.V)
	assert.True(t, env.Success)
	assert.Equal(t, "alice@example.com", env.Data.User.Email)
	assert.NotEmpty(t, env.Data.AccessToken)
	assert.NotEmpty(t, env.Data.RefreshToken)
	assert.Equal(t, 900, env.Data.ExpiresIn)

	me := ts.api.Get("/api/v1/auth/me", "Authorization: Bearer "+env.Data.AccessToken)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())

	profile := decodeEnvelope[UserResponse](t, me.Body.Bytes())
	assert.Equal(t, "Alice", profile.Data.DisplayName)
	assert.False(t, profile.Data.SpotifyLinked)
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        "alice@example.com",
		"password":     "short",
		"display_name": "Alice",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.registerUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        "Alice@Example.com",
		"password":     "correct horse battery",
		"display_name": "Imposter",
	})
	require.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.Equal(t, "ALREADY_EXISTS", env.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.registerUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong password entirely",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	ts := newTestServer(t)
	_, refreshToken := ts.registerUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": refreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, env.Data.RefreshToken)
	assert.NotEqual(t, refreshToken, env.Data.RefreshToken)

	// The old refresh token is dead after rotation.
	replay := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	_, refreshToken := ts.registerUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/logout", map[string]any{
		"refresh_token": refreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	refresh := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, refresh.Code)
}

func TestLogoutAll(t *testing.T) {
	ts := newTestServer(t)
	accessToken, refreshToken := ts.registerUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/logout-all", "Authorization: Bearer "+accessToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	refresh := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, refresh.Code)
}

func TestGetProfile_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/api/v1/auth/me")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestGetProfile_GarbageToken(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/api/v1/auth/me", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthRateLimit(t *testing.T) {
	ts := newTestServer(t)

	// The auth limiter allows a burst of 10; the 11th rapid request
	// must be throttled.
	var limited bool
	for i := 0; i < 12; i++ {
		resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
			"refresh_token": fmt.Sprintf("nonsense-%d", i),
		})
		if resp.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	}
	assert.True(t, limited, "expected a 429 within 12 rapid auth requests")
}
