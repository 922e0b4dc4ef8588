package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/service"
)

func (s *Server) registerPairingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "pairMealToMusic",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairings/meal-to-music",
		Summary:     "Pair meal to music",
		Description: "Recommends a playlist genre for a meal, or a random meal when none is given",
		Tags:        []string{"Pairings"},
	}, s.handlePairMealToMusic)

	huma.Register(s.api, huma.Operation{
		OperationID: "pairMusicToMeal",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairings/music-to-meal",
		Summary:     "Pair music to meal",
		Description: "Suggests cuisines and a meal for one of the user's playlists",
		Tags:        []string{"Pairings"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePairMusicToMeal)

	huma.Register(s.api, huma.Operation{
		OperationID: "detectPlaylistGenre",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists/{id}/genre",
		Summary:     "Detect playlist genre",
		Description: "Classifies a playlist's dominant genre",
		Tags:        []string{"Pairings"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDetectGenre)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMealSuggestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairings/suggestions",
		Summary:     "Meal suggestions",
		Description: "Returns meals matching a music genre's cuisines",
		Tags:        []string{"Pairings"},
	}, s.handleMealSuggestions)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSupportedCuisines",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairings/cuisines",
		Summary:     "List supported cuisines",
		Description: "Returns the cuisines with a direct genre mapping",
		Tags:        []string{"Pairings"},
	}, s.handleSupportedCuisines)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRandomPairing",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairings/random",
		Summary:     "Get random pairing",
		Description: "Returns a random cuisine and its genre mapping",
		Tags:        []string{"Pairings"},
	}, s.handleRandomPairing)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCuisineGenre",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairings/cuisines/{cuisine}",
		Summary:     "Get cuisine genre",
		Description: "Returns the genre mapping for a cuisine",
		Tags:        []string{"Pairings"},
	}, s.handleCuisineGenre)
}

// === DTOs ===

// PairMealToMusicInput contains parameters for the meal-to-music direction.
type PairMealToMusicInput struct {
	MealID string `query:"meal_id" doc:"Meal ID; omit for a random meal"`
}

// MealPairingOutput wraps a meal-to-music pairing for Huma.
type MealPairingOutput struct {
	Body domain.MealPlaylistPairing
}

// PairMusicToMealInput contains parameters for the music-to-meal direction.
type PairMusicToMealInput struct {
	Authorization string `header:"Authorization"`
	PlaylistID    string `query:"playlist_id" minLength:"1" doc:"Spotify playlist ID"`
}

// PlaylistPairingOutput wraps a music-to-meal pairing for Huma.
type PlaylistPairingOutput struct {
	Body domain.PlaylistMealPairing
}

// DetectGenreInput contains parameters for genre detection.
type DetectGenreInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Spotify playlist ID"`
}

// GenreDetectionOutput wraps a genre detection result for Huma.
type GenreDetectionOutput struct {
	Body service.GenreDetectionResult
}

// MealSuggestionsInput contains parameters for genre-based meal suggestions.
type MealSuggestionsInput struct {
	Genre string `query:"genre" minLength:"1" doc:"Music genre, e.g. jazz"`
	Count int    `query:"count" default:"3" minimum:"1" maximum:"10" doc:"Number of meals to return"`
}

// SupportedCuisinesResponse lists the directly mapped cuisines.
type SupportedCuisinesResponse struct {
	Cuisines []string `json:"cuisines" doc:"Cuisines with a direct genre mapping"`
}

// SupportedCuisinesOutput wraps the supported cuisines response for Huma.
type SupportedCuisinesOutput struct {
	Body SupportedCuisinesResponse
}

// CuisineGenreInput contains parameters for a cuisine lookup.
type CuisineGenreInput struct {
	Cuisine string `path:"cuisine" doc:"Cuisine name, e.g. Italian"`
}

// CuisineGenreResponse is the genre mapping for one cuisine.
type CuisineGenreResponse struct {
	Cuisine string                `json:"cuisine" doc:"Cuisine as requested"`
	Mapping domain.CuisineMapping `json:"mapping" doc:"Genre and playlist mapping"`
}

// CuisineGenreOutput wraps the cuisine genre response for Huma.
type CuisineGenreOutput struct {
	Body CuisineGenreResponse
}

// === Handlers ===

func (s *Server) handlePairMealToMusic(ctx context.Context, input *PairMealToMusicInput) (*MealPairingOutput, error) {
	var (
		pairing *domain.MealPlaylistPairing
		err     error
	)

	if input.MealID == "" {
		pairing, err = s.services.Pairing.PairRandomMeal(ctx)
	} else {
		pairing, err = s.services.Pairing.PairMealToMusic(ctx, input.MealID)
	}
	if err != nil {
		return nil, err
	}

	return &MealPairingOutput{Body: *pairing}, nil
}

func (s *Server) handlePairMusicToMeal(ctx context.Context, input *PairMusicToMealInput) (*PlaylistPairingOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	pairing, err := s.services.Pairing.PairMusicToMeal(ctx, userID, input.PlaylistID)
	if err != nil {
		return nil, err
	}

	return &PlaylistPairingOutput{Body: *pairing}, nil
}

func (s *Server) handleDetectGenre(ctx context.Context, input *DetectGenreInput) (*GenreDetectionOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Pairing.DetectGenre(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &GenreDetectionOutput{Body: *result}, nil
}

func (s *Server) handleMealSuggestions(ctx context.Context, input *MealSuggestionsInput) (*MealsOutput, error) {
	meals := s.services.Pairing.MealSuggestions(ctx, input.Genre, input.Count)

	return &MealsOutput{Body: MealsResponse{Meals: meals}}, nil
}

func (s *Server) handleSupportedCuisines(_ context.Context, _ *struct{}) (*SupportedCuisinesOutput, error) {
	cuisines := s.services.Pairing.SupportedCuisines()

	return &SupportedCuisinesOutput{Body: SupportedCuisinesResponse{Cuisines: cuisines}}, nil
}

func (s *Server) handleRandomPairing(_ context.Context, _ *struct{}) (*CuisineGenreOutput, error) {
	cuisine, mapping := s.services.Pairing.RandomPairing()

	return &CuisineGenreOutput{
		Body: CuisineGenreResponse{
			Cuisine: cuisine,
			Mapping: mapping,
		},
	}, nil
}

func (s *Server) handleCuisineGenre(_ context.Context, input *CuisineGenreInput) (*CuisineGenreOutput, error) {
	mapping := s.services.Pairing.CuisineGenre(input.Cuisine)

	return &CuisineGenreOutput{
		Body: CuisineGenreResponse{
			Cuisine: input.Cuisine,
			Mapping: mapping,
		},
	}, nil
}
