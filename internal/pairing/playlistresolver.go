package pairing

import (
	"context"
	"strings"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/logger"
)

// RecipeDirectory is the subset of the recipe collaborator the resolver
// needs. The real implementation talks to TheMealDB.
type RecipeDirectory interface {
	// GetMealsByCuisine returns meals for a cuisine. An empty slice
	// means no results, not an error.
	GetMealsByCuisine(ctx context.Context, cuisine string) ([]domain.Meal, error)
	// GetRandomMeal returns one random meal, or nil when the directory
	// has nothing to offer.
	GetRandomMeal(ctx context.Context) (*domain.Meal, error)
}

// Playlist-to-meal confidence scoring constants.
const (
	playlistBaseConfidence = 0.3
	wellDefinedGenreBonus  = 0.4
	multiCuisineBonus      = 0.2
	vagueGenrePenalty      = 0.1
	playlistMinConfidence  = 0.1
)

// wellDefinedGenres map tightly to a handful of cuisines, so a match
// means a strong pairing.
var wellDefinedGenres = []string{"jazz", "classical", "reggae", "latin", "indian"}

// vagueGenres are too broad to pick a cuisine from with any conviction.
var vagueGenres = []string{"pop", "rock", "electronic"}

// PlaylistResolver turns a detected genre into candidate cuisines and a
// sampled meal. Sampling is random on purpose: repeated pairings for
// the same playlist should offer variety, not the same dish every time.
type PlaylistResolver struct {
	table   *Table
	recipes RecipeDirectory
	rng     Rand
	log     *logger.Logger
}

// NewPlaylistResolver creates a resolver. Pass DefaultRand outside of tests.
func NewPlaylistResolver(table *Table, recipes RecipeDirectory, rng Rand, log *logger.Logger) *PlaylistResolver {
	return &PlaylistResolver{table: table, recipes: recipes, rng: rng, log: log}
}

// mealStrategy is one attempt at producing a meal. Returning nil with a
// nil error means "nothing found, try the next one".
type mealStrategy func(ctx context.Context) (*domain.Meal, error)

// firstMeal runs strategies in order and returns the first meal any of
// them produces. Failures are logged and skipped, never propagated: a
// nil meal after the last strategy is the terminal "no meal available"
// state the caller must render.
func (r *PlaylistResolver) firstMeal(ctx context.Context, strategies ...mealStrategy) *domain.Meal {
	for _, strategy := range strategies {
		meal, err := strategy(ctx)
		if err != nil {
			r.log.Debug("meal strategy failed, trying next", "error", err)
			continue
		}
		if meal != nil {
			return meal
		}
	}
	return nil
}

// Resolve maps a detected genre back to cuisines, samples one cuisine,
// and asks the recipe directory for a meal from it. Falls back to a
// globally random meal, then to no meal at all.
func (r *PlaylistResolver) Resolve(ctx context.Context, playlist domain.PlaylistRef, detectedGenre string) domain.PlaylistMealPairing {
	suggestedCuisines := r.table.LookupCuisinesByGenre(detectedGenre)

	meal := r.firstMeal(ctx,
		func(ctx context.Context) (*domain.Meal, error) {
			if len(suggestedCuisines) == 0 {
				return nil, nil
			}
			cuisine := suggestedCuisines[r.rng.IntN(len(suggestedCuisines))]
			meals, err := r.recipes.GetMealsByCuisine(ctx, cuisine)
			if err != nil {
				return nil, err
			}
			if len(meals) == 0 {
				return nil, nil
			}
			picked := meals[r.rng.IntN(len(meals))]
			return &picked, nil
		},
		func(ctx context.Context) (*domain.Meal, error) {
			return r.recipes.GetRandomMeal(ctx)
		},
	)

	return domain.PlaylistMealPairing{
		Playlist:          playlist,
		DetectedGenre:     detectedGenre,
		SuggestedCuisines: suggestedCuisines,
		SuggestedMeal:     meal,
		Confidence:        playlistConfidence(detectedGenre, suggestedCuisines),
	}
}

// MealSuggestions samples up to count meals for a genre, one per
// candidate cuisine, topping up with random meals when cuisines come up
// short.
func (r *PlaylistResolver) MealSuggestions(ctx context.Context, genre string, count int) []domain.Meal {
	cuisines := r.table.LookupCuisinesByGenre(genre)
	if len(cuisines) > count {
		cuisines = cuisines[:count]
	}

	meals := make([]domain.Meal, 0, count)
	for _, cuisine := range cuisines {
		found, err := r.recipes.GetMealsByCuisine(ctx, cuisine)
		if err != nil {
			r.log.Debug("cuisine lookup failed during suggestions", "cuisine", cuisine, "error", err)
			continue
		}
		if len(found) > 0 {
			meals = append(meals, found[r.rng.IntN(len(found))])
		}
	}

	for len(meals) < count {
		meal, err := r.recipes.GetRandomMeal(ctx)
		if err != nil || meal == nil {
			break
		}
		meals = append(meals, *meal)
	}

	return meals
}

// playlistConfidence scores the reverse pairing. Additive from a 0.3
// base, clamped to [0.1, 1.0].
func playlistConfidence(genre string, suggestedCuisines []string) float64 {
	confidence := playlistBaseConfidence
	lowered := strings.ToLower(genre)

	for _, g := range wellDefinedGenres {
		if strings.Contains(lowered, g) {
			confidence += wellDefinedGenreBonus
			break
		}
	}

	if len(suggestedCuisines) > 1 {
		confidence += multiCuisineBonus
	}

	for _, g := range vagueGenres {
		if strings.Contains(lowered, g) {
			confidence -= vagueGenrePenalty
			break
		}
	}

	return max(min(confidence, 1.0), playlistMinConfidence)
}
