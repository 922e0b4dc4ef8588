package pairing

import (
	"context"

	"github.com/foodnjam/foodnjam-server/internal/domain"
)

// Orchestrator is the façade over the two pairing directions. It holds
// no state and does no caching of its own; callers that want detection
// caching layer it on top (see the service package).
type Orchestrator struct {
	meals     *MealResolver
	detector  *Detector
	playlists *PlaylistResolver
}

// NewOrchestrator wires the three engine components together.
func NewOrchestrator(meals *MealResolver, detector *Detector, playlists *PlaylistResolver) *Orchestrator {
	return &Orchestrator{meals: meals, detector: detector, playlists: playlists}
}

// PairMealToMusic recommends a playlist for a meal. Deterministic and
// purely local: no collaborator calls.
func (o *Orchestrator) PairMealToMusic(meal domain.Meal) domain.MealPlaylistPairing {
	return o.meals.Resolve(meal)
}

// PairMusicToMeal detects the playlist's genre, then samples a meal for
// it. Collaborator failures degrade along the documented fallback chain
// and never surface as errors; the worst case is a nil SuggestedMeal.
func (o *Orchestrator) PairMusicToMeal(ctx context.Context, playlist domain.PlaylistRef) domain.PlaylistMealPairing {
	detection := o.detector.DetectPlaylistGenre(ctx, playlist)
	return o.playlists.Resolve(ctx, playlist, detection.DetectedGenre)
}

// DetectPlaylistGenre exposes the detector directly for callers that
// only want the classification.
func (o *Orchestrator) DetectPlaylistGenre(ctx context.Context, playlist domain.PlaylistRef) domain.GenreDetection {
	return o.detector.DetectPlaylistGenre(ctx, playlist)
}

// GenreSuggestions exposes the detector's related-genre expansion.
func (o *Orchestrator) GenreSuggestions(ctx context.Context, playlist domain.PlaylistRef) []string {
	return o.detector.GenreSuggestions(ctx, playlist)
}
