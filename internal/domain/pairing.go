package domain

import "time"

// CuisineMapping is one row of the cuisine-to-genre table: the genre,
// a suggested playlist display name, and the canonical genre tag used
// for reverse lookups.
type CuisineMapping struct {
	Genre        string `json:"genre"`
	Playlist     string `json:"playlist"`
	SpotifyGenre string `json:"spotifyGenre"`
}

// PlaylistRecommendation is the music half of a meal-to-music pairing.
type PlaylistRecommendation struct {
	Name         string `json:"name"`
	Genre        string `json:"genre"`
	SpotifyGenre string `json:"spotify_genre"`
}

// MealPlaylistPairing is the result of the meal-to-music direction:
// a meal plus the playlist recommendation derived from its cuisine.
type MealPlaylistPairing struct {
	Meal       Meal                   `json:"meal"`
	Cuisine    string                 `json:"cuisine"`
	Playlist   PlaylistRecommendation `json:"playlist"`
	Confidence float64                `json:"confidence"` // [0,1]
}

// PlaylistMealPairing is the result of the music-to-meal direction.
// SuggestedMeal is nil when every meal lookup fallback was exhausted;
// callers render that as an empty state with retry, not as an error.
type PlaylistMealPairing struct {
	Playlist          PlaylistRef `json:"playlist"`
	DetectedGenre     string      `json:"detected_genre"`
	SuggestedCuisines []string    `json:"suggested_cuisines"`
	SuggestedMeal     *Meal       `json:"suggested_meal"`
	Confidence        float64     `json:"confidence"` // [0.1,1]
}

// SavedPairing is a meal+playlist combination a user has favorited.
// Logical uniqueness is (UserID, MealName, PlaylistID); the store
// rejects duplicates so a re-save surfaces as an already-exists error.
type SavedPairing struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	MealName      string    `json:"meal_name"`
	Cuisine       string    `json:"cuisine"`
	PlaylistID    string    `json:"playlist_id"`
	PlaylistName  string    `json:"playlist_name"`
	MealID        string    `json:"meal_id,omitempty"`
	MealImage     string    `json:"meal_image,omitempty"`
	MealBlurhash  string    `json:"meal_blurhash,omitempty"`
	PlaylistImage string    `json:"playlist_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PairingStats aggregates a user's saved pairings for the profile screen.
type PairingStats struct {
	TotalPairings   int    `json:"total_pairings"`
	UniqueMeals     int    `json:"unique_meals"`
	UniquePlaylists int    `json:"unique_playlists"`
	TopCuisine      string `json:"top_cuisine,omitempty"`
}
