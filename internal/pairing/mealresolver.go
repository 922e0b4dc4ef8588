package pairing

import (
	"github.com/foodnjam/foodnjam-server/internal/domain"
)

// Meal confidence scoring constants. These weights are empirical; they
// exist to make result quality visible in the UI, not to be probabilities.
const (
	mealBaseConfidence   = 0.5
	knownCuisineBonus    = 0.3
	moodTagBonus         = 0.1
	popularCategoryBonus = 0.1
)

// moodTags are meal tags that hint at an eating mood worth matching
// music to.
var moodTags = []string{"spicy", "comfort", "fresh", "hearty", "light"}

// popularCategories are the meal categories users pair most often.
var popularCategories = map[string]bool{
	"Chicken": true,
	"Beef":    true,
	"Pasta":   true,
	"Seafood": true,
}

// MealResolver produces a playlist recommendation for a meal using the
// cuisine-genre table. Resolution is deterministic: the same meal always
// yields the same pairing.
type MealResolver struct {
	table *Table
}

// NewMealResolver creates a meal resolver backed by the given table.
func NewMealResolver(table *Table) *MealResolver {
	return &MealResolver{table: table}
}

// Resolve maps the meal's cuisine to a genre recommendation. Never
// fails: unmapped cuisines route to the Unknown entry with lowered
// confidence.
func (r *MealResolver) Resolve(meal domain.Meal) domain.MealPlaylistPairing {
	mapping := r.table.LookupByCuisine(meal.Cuisine)

	return domain.MealPlaylistPairing{
		Meal:    meal,
		Cuisine: meal.Cuisine,
		Playlist: domain.PlaylistRecommendation{
			Name:         mapping.Playlist,
			Genre:        mapping.Genre,
			SpotifyGenre: mapping.SpotifyGenre,
		},
		Confidence: r.confidence(meal),
	}
}

// confidence scores how trustworthy the pairing is. Additive from a 0.5
// base, clamped to 1.0.
func (r *MealResolver) confidence(meal domain.Meal) float64 {
	confidence := mealBaseConfidence

	if r.table.IsSupportedCuisine(meal.Cuisine) {
		confidence += knownCuisineBonus
	}

	for _, mood := range moodTags {
		if meal.HasTag(mood) {
			confidence += moodTagBonus
			break
		}
	}

	if popularCategories[meal.Category] {
		confidence += popularCategoryBonus
	}

	return min(confidence, 1.0)
}
