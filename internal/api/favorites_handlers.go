package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/service"
)

func (s *Server) registerFavoritesRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "saveFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/favorites",
		Summary:     "Save favorite",
		Description: "Saves a meal and playlist pairing to the user's favorites",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSaveFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the user's saved pairings, newest first",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFavoriteStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites/stats",
		Summary:     "Favorite stats",
		Description: "Aggregates the user's saved pairings for the profile screen",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFavoriteStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFavorite",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Get favorite",
		Description: "Returns one saved pairing by ID",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Delete favorite",
		Description: "Removes a saved pairing",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteFavorite)
}

// === DTOs ===

// SaveFavoriteRequest is the request body for saving a pairing.
type SaveFavoriteRequest struct {
	MealName      string `json:"meal_name" doc:"Meal name"`
	Cuisine       string `json:"cuisine" doc:"Meal cuisine"`
	PlaylistID    string `json:"playlist_id" doc:"Spotify playlist ID"`
	PlaylistName  string `json:"playlist_name" doc:"Playlist name"`
	MealID        string `json:"meal_id,omitempty" doc:"Meal ID in the recipe directory"`
	MealImage     string `json:"meal_image,omitempty" doc:"Meal image URL"`
	PlaylistImage string `json:"playlist_image,omitempty" doc:"Playlist cover URL"`
}

// SaveFavoriteInput wraps the save request for Huma.
type SaveFavoriteInput struct {
	Authorization string `header:"Authorization"`
	Body          SaveFavoriteRequest
}

// FavoriteOutput wraps one saved pairing for Huma.
type FavoriteOutput struct {
	Body domain.SavedPairing
}

// ListFavoritesInput contains parameters for listing favorites.
type ListFavoritesInput struct {
	Authorization string `header:"Authorization"`
}

// FavoritesResponse contains a list of saved pairings.
type FavoritesResponse struct {
	Favorites []*domain.SavedPairing `json:"favorites" doc:"Saved pairings, newest first"`
}

// FavoritesOutput wraps the favorites response for Huma.
type FavoritesOutput struct {
	Body FavoritesResponse
}

// FavoriteStatsInput contains parameters for the stats endpoint.
type FavoriteStatsInput struct {
	Authorization string `header:"Authorization"`
}

// FavoriteStatsOutput wraps pairing stats for Huma.
type FavoriteStatsOutput struct {
	Body domain.PairingStats
}

// GetFavoriteInput contains parameters for fetching one favorite.
type GetFavoriteInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Saved pairing ID"`
}

// DeleteFavoriteInput contains parameters for deleting a favorite.
type DeleteFavoriteInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Saved pairing ID"`
}

// === Handlers ===

func (s *Server) handleSaveFavorite(ctx context.Context, input *SaveFavoriteInput) (*FavoriteOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	saved, err := s.services.Favorites.Save(ctx, userID, service.SavePairingRequest{
		MealName:      input.Body.MealName,
		Cuisine:       input.Body.Cuisine,
		PlaylistID:    input.Body.PlaylistID,
		PlaylistName:  input.Body.PlaylistName,
		MealID:        input.Body.MealID,
		MealImage:     input.Body.MealImage,
		PlaylistImage: input.Body.PlaylistImage,
	})
	if err != nil {
		return nil, err
	}

	return &FavoriteOutput{Body: *saved}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*FavoritesOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	favorites, err := s.services.Favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FavoritesOutput{Body: FavoritesResponse{Favorites: favorites}}, nil
}

func (s *Server) handleFavoriteStats(ctx context.Context, input *FavoriteStatsInput) (*FavoriteStatsOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	stats, err := s.services.Favorites.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FavoriteStatsOutput{Body: *stats}, nil
}

func (s *Server) handleGetFavorite(ctx context.Context, input *GetFavoriteInput) (*FavoriteOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	saved, err := s.services.Favorites.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &FavoriteOutput{Body: *saved}, nil
}

func (s *Server) handleDeleteFavorite(ctx context.Context, input *DeleteFavoriteInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Favorites.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "favorite removed"}}, nil
}
