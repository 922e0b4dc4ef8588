// Package pairing implements the meal-to-music recommendation engine:
// the cuisine-genre mapping table, the playlist genre detector, and the
// resolvers for both pairing directions.
package pairing

import (
	_ "embed"
	"encoding/json/v2"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/foodnjam/foodnjam-server/internal/domain"
)

//go:embed mapping.json
var embeddedMapping []byte

// cuisineVariations maps common spellings the recipe directory uses to
// the canonical cuisine keys in the table.
var cuisineVariations = map[string]string{
	"USA":           "American",
	"United States": "American",
	"UK":            "British",
	"Britain":       "British",
	"England":       "British",
	"Korea":         "Korean",
	"Lebanon":       "Lebanese",
}

// defaultCuisines is returned by LookupCuisinesByGenre when a genre has
// no exact or partial match in the reverse index. The reverse path must
// never come back empty, so we fall back to broadly popular cuisines.
var defaultCuisines = []string{"Italian", "Mexican", "Chinese"}

// mappingFile is the on-disk shape of the mapping table: the forward
// cuisine table plus the hand-authored genre-to-cuisines reverse index.
type mappingFile struct {
	Cuisines map[string]domain.CuisineMapping `json:"cuisines"`
	Genres   map[string][]string              `json:"genres"`
}

// Table is the immutable-after-load cuisine-genre mapping. A mutex
// guards the maps only because the mapping file can be hot-reloaded;
// lookups never mutate.
type Table struct {
	mu        sync.RWMutex
	cuisines  map[string]domain.CuisineMapping
	genres    map[string][]string
	genreKeys []string // sorted, for deterministic partial matching
}

// NewTable loads the embedded mapping table.
func NewTable() (*Table, error) {
	t := &Table{}
	if err := t.load(embeddedMapping); err != nil {
		return nil, fmt.Errorf("failed to load embedded mapping: %w", err)
	}
	return t, nil
}

// NewTableFromFile loads the embedded table, then overlays the mapping
// file at path on top of it. Used when an operator provides a custom
// mapping file.
func NewTableFromFile(path string) (*Table, error) {
	t, err := NewTable()
	if err != nil {
		return nil, err
	}
	if err := t.ReloadFromFile(path); err != nil {
		return nil, err
	}
	return t, nil
}

// ReloadFromFile replaces the table contents with the mapping file at
// path. The swap is atomic with respect to concurrent lookups.
func (t *Table) ReloadFromFile(path string) error {
	data, err := os.ReadFile(path) //#nosec G304 -- Mapping override path comes from operator config
	if err != nil {
		return fmt.Errorf("failed to read mapping file: %w", err)
	}
	if err := t.load(data); err != nil {
		return fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}
	return nil
}

func (t *Table) load(data []byte) error {
	var file mappingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}
	if len(file.Cuisines) == 0 {
		return fmt.Errorf("mapping has no cuisines")
	}
	if _, ok := file.Cuisines["Unknown"]; !ok {
		return fmt.Errorf("mapping is missing the Unknown fallback entry")
	}

	genreKeys := make([]string, 0, len(file.Genres))
	for g := range file.Genres {
		genreKeys = append(genreKeys, g)
	}
	slices.Sort(genreKeys)

	t.mu.Lock()
	t.cuisines = file.Cuisines
	t.genres = file.Genres
	t.genreKeys = genreKeys
	t.mu.Unlock()
	return nil
}

// NormalizeCuisine trims the input and applies known synonym
// substitutions ("USA" becomes "American", "UK" becomes "British").
func NormalizeCuisine(cuisine string) string {
	normalized := strings.TrimSpace(cuisine)
	if canonical, ok := cuisineVariations[normalized]; ok {
		return canonical
	}
	return normalized
}

// LookupByCuisine returns the mapping for a cuisine, normalizing the
// input first. Unrecognized cuisines degrade to the Unknown entry, so
// this never fails.
func (t *Table) LookupByCuisine(cuisine string) domain.CuisineMapping {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if m, ok := t.cuisines[NormalizeCuisine(cuisine)]; ok {
		return m
	}
	return t.cuisines["Unknown"]
}

// IsSupportedCuisine reports whether the cuisine (after normalization)
// has its own entry in the table rather than routing to Unknown.
func (t *Table) IsSupportedCuisine(cuisine string) bool {
	normalized := NormalizeCuisine(cuisine)
	if normalized == "Unknown" {
		return false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.cuisines[normalized]
	return ok
}

// LookupCuisinesByGenre returns candidate cuisines for a genre.
// Tries an exact key match first, then a bidirectional substring match
// against all known genre keys (in sorted order, so the first match is
// deterministic), and finally falls back to defaultCuisines. Never
// returns an empty list.
func (t *Table) LookupCuisinesByGenre(genre string) []string {
	normalized := strings.ToLower(strings.TrimSpace(genre))

	t.mu.RLock()
	defer t.mu.RUnlock()

	if cuisines, ok := t.genres[normalized]; ok {
		return slices.Clone(cuisines)
	}

	if normalized != "" {
		for _, key := range t.genreKeys {
			if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
				return slices.Clone(t.genres[key])
			}
		}
	}

	return slices.Clone(defaultCuisines)
}

// AllCuisines returns every cuisine key in the table except the Unknown
// fallback, sorted alphabetically.
func (t *Table) AllCuisines() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cuisines := make([]string, 0, len(t.cuisines))
	for c := range t.cuisines {
		if c != "Unknown" {
			cuisines = append(cuisines, c)
		}
	}
	slices.Sort(cuisines)
	return cuisines
}

// AllGenres returns the distinct canonical genre tags across all
// cuisine entries, sorted alphabetically.
func (t *Table) AllGenres() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[string]bool)
	genres := make([]string, 0, len(t.cuisines))
	for _, m := range t.cuisines {
		if !seen[m.SpotifyGenre] {
			seen[m.SpotifyGenre] = true
			genres = append(genres, m.SpotifyGenre)
		}
	}
	slices.Sort(genres)
	return genres
}

// RandomPairing picks a uniformly random cuisine and its mapping. A
// table reduced to the Unknown fallback yields that entry.
func (t *Table) RandomPairing(rng Rand) (string, domain.CuisineMapping) {
	cuisines := t.AllCuisines()

	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(cuisines) == 0 {
		return "Unknown", t.cuisines["Unknown"]
	}
	cuisine := cuisines[rng.IntN(len(cuisines))]
	return cuisine, t.cuisines[cuisine]
}
