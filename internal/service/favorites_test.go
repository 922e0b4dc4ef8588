package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/foodnjam/foodnjam-server/internal/errors"
	"github.com/foodnjam/foodnjam-server/internal/images"
	"github.com/foodnjam/foodnjam-server/internal/store/sqlite"
)

func newFavoritesFixture(t *testing.T) (*FavoritesService, *sqlite.Store, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)

	st := newTestSQLite(t)
	svc := NewFavoritesService(st, images.NewHasher(), newTestValidator(), testLogger())
	createUser(t, st, "user-1")
	return svc, st, srv.URL
}

func validSave(imageURL string) SavePairingRequest {
	return SavePairingRequest{
		MealName:     "Lasagne",
		Cuisine:      "Italian",
		PlaylistID:   "pl-1",
		PlaylistName: "Italian Dinner Jazz",
		MealID:       "52771",
		MealImage:    imageURL,
	}
}

func TestSaveFavorite(t *testing.T) {
	svc, _, imgURL := newFavoritesFixture(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "user-1", validSave(imgURL+"/lasagne.png"))
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Lasagne", saved.MealName)
	assert.NotEmpty(t, saved.MealBlurhash)

	got, err := svc.Get(ctx, "user-1", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.MealBlurhash, got.MealBlurhash)
}

func TestSaveFavorite_Duplicate(t *testing.T) {
	svc, _, imgURL := newFavoritesFixture(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "user-1", validSave(imgURL+"/lasagne.png"))
	require.NoError(t, err)

	_, err = svc.Save(ctx, "user-1", validSave(imgURL+"/lasagne.png"))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestSaveFavorite_BadImageStillSaves(t *testing.T) {
	svc, _, imgURL := newFavoritesFixture(t)

	saved, err := svc.Save(context.Background(), "user-1", validSave(imgURL+"/missing.jpg"))
	require.NoError(t, err)
	assert.Empty(t, saved.MealBlurhash)
}

func TestSaveFavorite_NoImage(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)

	saved, err := svc.Save(context.Background(), "user-1", validSave(""))
	require.NoError(t, err)
	assert.Empty(t, saved.MealBlurhash)
}

func TestSaveFavorite_Validation(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)
	ctx := context.Background()

	req := validSave("")
	req.MealName = ""
	_, err := svc.Save(ctx, "user-1", req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	req = validSave("not-a-url")
	_, err = svc.Save(ctx, "user-1", req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListAndDeleteFavorites(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, "user-1", validSave(""))
	require.NoError(t, err)

	second := validSave("")
	second.MealName = "Tacos"
	second.Cuisine = "Mexican"
	_, err = svc.Save(ctx, "user-1", second)
	require.NoError(t, err)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, "user-1", first.ID))

	list, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Tacos", list[0].MealName)

	err = svc.Delete(ctx, "user-1", first.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFavoriteStats(t *testing.T) {
	svc, _, _ := newFavoritesFixture(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "user-1", validSave(""))
	require.NoError(t, err)

	second := validSave("")
	second.PlaylistID = "pl-2"
	second.PlaylistName = "Parisian Cafe Jazz"
	_, err = svc.Save(ctx, "user-1", second)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPairings)
	assert.Equal(t, 1, stats.UniqueMeals)
	assert.Equal(t, 2, stats.UniquePlaylists)
	assert.Equal(t, "Italian", stats.TopCuisine)
}
