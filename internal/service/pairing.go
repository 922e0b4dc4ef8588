package service

import (
	"context"

	"github.com/foodnjam/foodnjam-server/internal/cache"
	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/music"
	"github.com/foodnjam/foodnjam-server/internal/pairing"
)

// PairingService drives both pairing directions. It binds the genre
// detector to the caller's Spotify token per request and caches
// detections so repeated looks at the same playlist skip the audio
// analysis.
type PairingService struct {
	table     *pairing.Table
	meals     *pairing.MealResolver
	playlists *pairing.PlaylistResolver
	catalog   *CatalogService
	music     *music.Client
	spotify   *SpotifyService
	cache     *cache.Cache
	rng       pairing.Rand
	log       *logger.Logger
}

// NewPairingService creates the pairing service.
func NewPairingService(
	table *pairing.Table,
	catalog *CatalogService,
	musicClient *music.Client,
	spotify *SpotifyService,
	c *cache.Cache,
	rng pairing.Rand,
	log *logger.Logger,
) *PairingService {
	return &PairingService{
		table:     table,
		meals:     pairing.NewMealResolver(table),
		playlists: pairing.NewPlaylistResolver(table, catalog, rng, log),
		catalog:   catalog,
		music:     musicClient,
		spotify:   spotify,
		cache:     c,
		rng:       rng,
		log:       log,
	}
}

// boundCatalog adapts the Spotify client to the detector's catalog
// interface by fixing the access token.
type boundCatalog struct {
	client *music.Client
	token  string
}

func (b boundCatalog) GetPlaylistTracks(ctx context.Context, playlistID string) ([]domain.TrackRef, error) {
	return b.client.GetPlaylistTracks(ctx, b.token, playlistID)
}

func (b boundCatalog) GetAudioFeatures(ctx context.Context, trackIDs []string) ([]domain.AudioFeatures, error) {
	return b.client.GetAudioFeatures(ctx, b.token, trackIDs)
}

// PairMealToMusic recommends a playlist for a meal fetched by ID.
func (s *PairingService) PairMealToMusic(ctx context.Context, mealID string) (*domain.MealPlaylistPairing, error) {
	meal, err := s.catalog.GetMeal(ctx, mealID)
	if err != nil {
		return nil, err
	}

	result := s.meals.Resolve(*meal)
	return &result, nil
}

// PairRandomMeal picks a random meal and recommends a playlist for it.
// The "surprise me" flow.
func (s *PairingService) PairRandomMeal(ctx context.Context) (*domain.MealPlaylistPairing, error) {
	meal, err := s.catalog.GetRandomMeal(ctx)
	if err != nil {
		return nil, err
	}

	result := s.meals.Resolve(*meal)
	return &result, nil
}

// PairMusicToMeal detects a playlist's genre and suggests a meal for it.
func (s *PairingService) PairMusicToMeal(ctx context.Context, userID, playlistID string) (*domain.PlaylistMealPairing, error) {
	playlist, err := s.spotify.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	detection, err := s.detect(ctx, userID, *playlist)
	if err != nil {
		return nil, err
	}

	result := s.playlists.Resolve(ctx, *playlist, detection.DetectedGenre)
	return &result, nil
}

// GenreDetectionResult is a genre classification plus related genres.
type GenreDetectionResult struct {
	Detection       domain.GenreDetection `json:"detection"`
	SuggestedGenres []string              `json:"suggested_genres"`
}

// DetectGenre classifies a playlist's genre for the user.
func (s *PairingService) DetectGenre(ctx context.Context, userID, playlistID string) (*GenreDetectionResult, error) {
	playlist, err := s.spotify.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	detection, err := s.detect(ctx, userID, *playlist)
	if err != nil {
		return nil, err
	}

	return &GenreDetectionResult{
		Detection:       *detection,
		SuggestedGenres: pairing.ExpandGenre(detection.DetectedGenre),
	}, nil
}

// MealSuggestions returns meals matching a genre's cuisines, topped up
// with random meals when the cuisines come up short.
func (s *PairingService) MealSuggestions(ctx context.Context, genre string, count int) []domain.Meal {
	return s.playlists.MealSuggestions(ctx, genre, count)
}

// SupportedCuisines lists the cuisines the pairing table maps directly.
func (s *PairingService) SupportedCuisines() []string {
	return s.table.AllCuisines()
}

// CuisineGenre returns the table row for a cuisine, normalizing
// variations and degrading to the fallback row for unknown cuisines.
func (s *PairingService) CuisineGenre(cuisine string) domain.CuisineMapping {
	return s.table.LookupByCuisine(cuisine)
}

// RandomPairing picks a random cuisine and its genre mapping from the
// table. No collaborator calls, so it never fails.
func (s *PairingService) RandomPairing() (string, domain.CuisineMapping) {
	return s.table.RandomPairing(s.rng)
}

// detect runs the cached genre detection for a playlist.
func (s *PairingService) detect(ctx context.Context, userID string, playlist domain.PlaylistRef) (*domain.GenreDetection, error) {
	if cached, err := s.cache.GetDetection(ctx, playlist.ID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.Warn("detection cache read", "playlist_id", playlist.ID, "error", err)
	}

	token, err := s.spotify.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	detector := pairing.NewDetector(boundCatalog{client: s.music, token: token}, s.log)
	detection := detector.DetectPlaylistGenre(ctx, playlist)

	if err := s.cache.SetDetection(ctx, playlist.ID, detection); err != nil {
		s.log.Warn("detection cache write", "playlist_id", playlist.ID, "error", err)
	}

	return &detection, nil
}
