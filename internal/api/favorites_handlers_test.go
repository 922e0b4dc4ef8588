package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodnjam/foodnjam-server/internal/domain"
)

func saveFavoriteBody() map[string]any {
	return map[string]any{
		"meal_name":     "Spicy Arrabiata Penne",
		"cuisine":       "Italian",
		"playlist_id":   "pl-jazz",
		"playlist_name": "Jazz Standards",
		"meal_id":       "52771",
	}
}

func TestSaveAndGetFavorite(t *testing.T) {
	ts := newTestServer(t)
	accessToken, _ := ts.registerUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/favorites",
		"Authorization: Bearer "+accessToken, saveFavoriteBody())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[domain.SavedPairing](t, resp.Body.Bytes())
	assert.NotEmpty(t, env.Data.ID)
	assert.Equal(t, "Italian", env.Data.Cuisine)

	got := ts.api.Get("/api/v1/favorites/"+env.Data.ID, "Authorization: Bearer "+accessToken)
	require.Equal(t, http.StatusOK, got.Code, got.Body.String())

	fetched := decodeEnvelope[domain.SavedPairing](t, got.Body.Bytes())
	assert.Equal(t, env.Data.ID, fetched.Data.ID)
	assert.Equal(t, "Jazz Standards", fetched.Data.PlaylistName)
}

func TestSaveFavorite_Duplicate(t *testing.T) {
	ts := newTestServer(t)
	accessToken, _ := ts.registerUser(t, "alice@example.com")

	first := ts.api.Post("/api/v1/favorites",
		"Authorization: Bearer "+accessToken, saveFavoriteBody())
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	second := ts.api.Post("/api/v1/favorites",
		"Authorization: Bearer "+accessToken, saveFavoriteBody())
	require.Equal(t, http.StatusConflict, second.Code, second.Body.String())

	env := decodeEnvelope[struct{}](t, second.Body.Bytes())
	assert.Equal(t, "ALREADY_EXISTS", env.Code)
}

func TestSaveFavorite_Validation(t *testing.T) {
	ts := newTestServer(t)
	accessToken, _ := ts.registerUser(t, "alice@example.com")

	body := saveFavoriteBody()
	body["meal_name"] = ""

	resp := ts.api.Post("/api/v1/favorites",
		"Authorization: Bearer "+accessToken, body)
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestListAndDeleteFavorites(t *testing.T) {
	ts := newTestServer(t)
	accessToken, _ := ts.registerUser(t, "alice@example.com")

	first := ts.api.Post("/api/v1/favorites",
		"Authorization: Bearer "+accessToken, saveFavoriteBody())
	require.Equal(t, http.StatusOK, first.Code)

	second := saveFavoriteBody()
	second["meal_name"] = "Paella"
	second["cuisine"] = "Spanish"
	resp := ts.api.Post("/api/v1/favorites",
		"Authorization: Bearer "+accessToken, second)
	require.Equal(t, http.StatusOK, resp.Code)

	list := ts.api.Get("/api/v1/favorites", "Authorization: Bearer "+accessToken)
	require.Equal(t, http.StatusOK, list.Code, list.Body.String())

	env := decodeEnvelope[FavoritesResponse](t, list.Body.Bytes())
	require.Len(t, env.Data.Favorites, 2)
	assert.Equal(t, "Paella", env.Data.Favorites[0].MealName, "newest first")

	del := ts.api.Delete("/api/v1/favorites/"+env.Data.Favorites[0].ID,
		"Authorization: Bearer "+accessToken)
	require.Equal(t, http.StatusOK, del.Code, del.Body.String())

	again := ts.api.Delete("/api/v1/favorites/"+env.Data.Favorites[0].ID,
		"Authorization: Bearer "+accessToken)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestFavoriteStatsRoute(t *testing.T) {
	ts := newTestServer(t)
	accessToken, _ := ts.registerUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/favorites",
		"Authorization: Bearer "+accessToken, saveFavoriteBody())
	require.Equal(t, http.StatusOK, resp.Code)

	stats := ts.api.Get("/api/v1/favorites/stats", "Authorization: Bearer "+accessToken)
	require.Equal(t, http.StatusOK, stats.Code, stats.Body.String())

	env := decodeEnvelope[domain.PairingStats](t, stats.Body.Bytes())
	assert.Equal(t, 1, env.Data.TotalPairings)
	assert.Equal(t, "Italian", env.Data.TopCuisine)
}

func TestFavorites_RequireAuth(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/api/v1/favorites")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	save := ts.api.Post("/api/v1/favorites", saveFavoriteBody())
	assert.Equal(t, http.StatusUnauthorized, save.Code)
}
