package domain

import "strings"

// Ingredient is one ingredient line on a meal, e.g. {"Spaghetti", "200g"}.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Meal represents a recipe fetched from the recipe directory.
// Meals are value objects: immutable once fetched, never written back upstream.
type Meal struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"` // e.g. "Pasta", "Seafood"
	Cuisine      string       `json:"cuisine"`  // e.g. "Italian" (the directory calls this "area")
	Instructions string       `json:"instructions"`
	Image        string       `json:"image"`
	Tags         []string     `json:"tags"`
	Ingredients  []Ingredient `json:"ingredients"`
	YoutubeURL   string       `json:"youtube_url,omitempty"`
	SourceURL    string       `json:"source_url,omitempty"`
}

// HasTag reports whether any of the meal's tags contains the given
// keyword, case-insensitively. Used by the pairing confidence scoring.
func (m *Meal) HasTag(keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return false
}
