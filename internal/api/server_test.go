package api

import (
	"bytes"
	"encoding/json/v2"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/foodnjam/foodnjam-server/internal/auth"
	"github.com/foodnjam/foodnjam-server/internal/cache"
	"github.com/foodnjam/foodnjam-server/internal/config"
	"github.com/foodnjam/foodnjam-server/internal/images"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/music"
	"github.com/foodnjam/foodnjam-server/internal/pairing"
	"github.com/foodnjam/foodnjam-server/internal/recipes"
	"github.com/foodnjam/foodnjam-server/internal/service"
	"github.com/foodnjam/foodnjam-server/internal/store/sqlite"
	"github.com/foodnjam/foodnjam-server/internal/validation"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wires the API against fake Spotify and TheMealDB servers.
type testServer struct {
	srv *Server
	api humatest.TestAPI

	trackCalls int
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{}

	log := logger.New(logger.Config{Writer: io.Discard, Format: "json"})

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	c, err := cache.Open(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	tokens, err := auth.NewTokenService(bytes.Repeat([]byte{0x42}, 32), 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	cipher, err := auth.NewTokenCipher(bytes.Repeat([]byte{0x17}, 32))
	require.NoError(t, err)

	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access-1","refresh_token":"refresh-1","expires_in":3600,"token_type":"Bearer"}`))
	}))
	t.Cleanup(accounts.Close)

	spotifyAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/me":
			w.Write([]byte(`{"id":"spotify-alice","display_name":"Alice"}`))
		case "/me/playlists":
			w.Write([]byte(`{"items":[{"id":"pl-jazz","name":"Jazz Standards","owner":{"id":"spotify-alice","display_name":"Alice"},"tracks":{"total":12}}]}`))
		case "/playlists/pl-jazz":
			w.Write([]byte(`{"id":"pl-jazz","name":"Jazz Standards","owner":{"id":"spotify-alice","display_name":"Alice"},"tracks":{"total":12}}`))
		case "/playlists/pl-jazz/tracks":
			ts.trackCalls++
			w.Write([]byte(`{"items":[],"next":null}`))
		case "/search":
			w.Write([]byte(`{"playlists":{"items":[{"id":"pl-dinner","name":"Dinner Party","owner":{"id":"someone","display_name":"Someone"},"tracks":{"total":40}}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(spotifyAPI.Close)

	mealdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/lookup.php":
			fmt.Fprintf(w, `{"meals":[{"idMeal":%q,"strMeal":"Spicy Arrabiata Penne","strCategory":"Pasta","strArea":"Italian","strInstructions":"Cook it.","strMealThumb":"https://example.com/52771.jpg","strTags":"Dinner","strIngredient1":"Pasta","strMeasure1":"1 pound"}]}`, r.URL.Query().Get("i"))
		case "/search.php":
			fmt.Fprint(w, `{"meals":[{"idMeal":"52771","strMeal":"Spicy Arrabiata Penne","strCategory":"Pasta","strArea":"Italian","strInstructions":"Cook it.","strMealThumb":"https://example.com/52771.jpg","strTags":"Dinner","strIngredient1":"Pasta","strMeasure1":"1 pound"}]}`)
		case "/filter.php":
			fmt.Fprint(w, `{"meals":[{"idMeal":"52771","strMeal":"Spicy Arrabiata Penne","strMealThumb":"https://example.com/52771.jpg"}]}`)
		case "/list.php":
			fmt.Fprint(w, `{"meals":[{"strArea":"Italian"},{"strArea":"Mexican"},{"strArea":"Uruguayan"}]}`)
		case "/random.php":
			fmt.Fprint(w, `{"meals":[{"idMeal":"53000","strMeal":"Paella","strCategory":"Seafood","strArea":"Spanish","strInstructions":"Cook it.","strMealThumb":"https://example.com/53000.jpg"}]}`)
		default:
			fmt.Fprint(w, `{"meals":null}`)
		}
	}))
	t.Cleanup(mealdb.Close)

	recipesClient := recipes.NewWithBaseURL(mealdb.URL, log)
	t.Cleanup(recipesClient.Close)
	musicClient := music.NewWithBaseURL(spotifyAPI.URL, log)
	t.Cleanup(musicClient.Close)

	validate := validation.New()
	table, err := pairing.NewTable()
	require.NoError(t, err)
	oauth := auth.NewSpotifyAuthWithTokenURL(accounts.URL, config.SpotifyConfig{ClientID: "client-id"}, log)

	sessions := service.NewSessionService(st, tokens, log)
	spotify := service.NewSpotifyService(st, oauth, musicClient, cipher, log)
	catalog := service.NewCatalogService(recipesClient, c, table, log)
	pairingSvc := service.NewPairingService(table, catalog, musicClient, spotify, c,
		rand.New(rand.NewPCG(7, 0)), log)

	services := &Services{
		Auth:      service.NewAuthService(st, sessions, validate, log),
		Sessions:  sessions,
		Spotify:   spotify,
		Catalog:   catalog,
		Pairing:   pairingSvc,
		Favorites: service.NewFavoritesService(st, images.NewHasher(), validate, log),
	}

	srv := NewServer(st, services, tokens, []string{"*"}, log)
	t.Cleanup(srv.Close)

	ts.srv = srv
	ts.api = humatest.Wrap(t, srv.api)
	return ts
}

// registerUser creates an account and returns its access and refresh tokens.
func (ts *testServer) registerUser(t *testing.T, email string) (accessToken, refreshToken string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        email,
		"password":     "correct horse battery",
		"display_name": "Alice",
		"device_name":  "test phone",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	env := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())
	return env.Data.AccessToken, env.Data.RefreshToken
}

// linkSpotify links the fake Spotify account for the given token's user.
func (ts *testServer) linkSpotify(t *testing.T, accessToken string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/spotify/link",
		"Authorization: Bearer "+accessToken,
		map[string]any{"code": "auth-code", "code_verifier": "verifier"})
	require.Equal(t, http.StatusOK, resp.Code, "link failed: %s", resp.Body.String())
}

func decodeEnvelope[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()

	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}
