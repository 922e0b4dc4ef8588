// Package cache provides a Badger-backed cache for upstream lookups:
// playlist genre detections, TheMealDB responses, and Spotify playlist
// metadata. Entries carry a fetch timestamp and expire by age, so a
// stale entry reads as a miss rather than an error.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"encoding/json/v2"

	"github.com/dgraph-io/badger/v4"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/logger"
)

const (
	detectionPrefix      = "pairing:detection:"
	mealPrefix           = "mealdb:meal:"
	mealsByCuisinePrefix = "mealdb:cuisine:"
	cuisineListKey       = "mealdb:cuisines"

	// Differentiated cache durations.
	detectionCacheDuration = 15 * time.Minute   // Playlists get renamed and reordered
	mealCacheDuration      = 7 * 24 * time.Hour // Individual recipes are stable
	cuisineCacheDuration   = 24 * time.Hour     // Cuisine listings change rarely
)

// Cache wraps a Badger database used for upstream response caching.
type Cache struct {
	db  *badger.DB
	log *logger.Logger
}

// Open creates a cache database at the given path.
func Open(path string, log *logger.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	log.Debug("cache database opened", "path", path)

	return &Cache{db: db, log: log}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// cachedDetection wraps a genre detection with cache info.
type cachedDetection struct {
	Detection domain.GenreDetection `json:"detection"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// cachedMeal wraps a hydrated meal with cache info.
type cachedMeal struct {
	Meal      *domain.Meal `json:"meal"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// cachedMeals wraps a cuisine's meal listing with cache info.
type cachedMeals struct {
	Meals     []domain.Meal `json:"meals"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// cachedCuisines wraps the cuisine listing with cache info.
type cachedCuisines struct {
	Cuisines  []string  `json:"cuisines"`
	FetchedAt time.Time `json:"fetched_at"`
}

// get reads and unmarshals one entry. Returns badger.ErrKeyNotFound on miss.
func (c *Cache) get(key []byte, out any) error {
	return c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// set marshals and writes one entry.
func (c *Cache) set(key []byte, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// GetDetection retrieves a cached genre detection for a playlist.
// Returns nil, nil if not found or expired.
func (c *Cache) GetDetection(ctx context.Context, playlistID string) (*domain.GenreDetection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := fmt.Appendf(nil, "%s%s", detectionPrefix, playlistID)

	var cached cachedDetection
	err := c.get(key, &cached)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached detection: %w", err)
	}

	if time.Since(cached.FetchedAt) > detectionCacheDuration {
		return nil, nil // Treat as cache miss
	}

	return &cached.Detection, nil
}

// SetDetection stores a genre detection for a playlist.
func (c *Cache) SetDetection(ctx context.Context, playlistID string, detection domain.GenreDetection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := fmt.Appendf(nil, "%s%s", detectionPrefix, playlistID)
	return c.set(key, cachedDetection{Detection: detection, FetchedAt: time.Now()})
}

// GetMeal retrieves a cached meal by ID.
// Returns nil, nil if not found or expired.
func (c *Cache) GetMeal(ctx context.Context, mealID string) (*domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := fmt.Appendf(nil, "%s%s", mealPrefix, mealID)

	var cached cachedMeal
	err := c.get(key, &cached)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached meal: %w", err)
	}

	if time.Since(cached.FetchedAt) > mealCacheDuration {
		return nil, nil
	}

	return cached.Meal, nil
}

// SetMeal stores a hydrated meal.
func (c *Cache) SetMeal(ctx context.Context, meal *domain.Meal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := fmt.Appendf(nil, "%s%s", mealPrefix, meal.ID)
	return c.set(key, cachedMeal{Meal: meal, FetchedAt: time.Now()})
}

// GetMealsByCuisine retrieves a cached cuisine listing.
// Returns nil, nil if not found or expired.
func (c *Cache) GetMealsByCuisine(ctx context.Context, cuisine string) ([]domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := fmt.Appendf(nil, "%s%s", mealsByCuisinePrefix, cuisine)

	var cached cachedMeals
	err := c.get(key, &cached)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached cuisine meals: %w", err)
	}

	if time.Since(cached.FetchedAt) > cuisineCacheDuration {
		return nil, nil
	}

	return cached.Meals, nil
}

// SetMealsByCuisine stores a cuisine's meal listing.
func (c *Cache) SetMealsByCuisine(ctx context.Context, cuisine string, meals []domain.Meal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := fmt.Appendf(nil, "%s%s", mealsByCuisinePrefix, cuisine)
	return c.set(key, cachedMeals{Meals: meals, FetchedAt: time.Now()})
}

// GetCuisines retrieves the cached cuisine list.
// Returns nil, nil if not found or expired.
func (c *Cache) GetCuisines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cached cachedCuisines
	err := c.get([]byte(cuisineListKey), &cached)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached cuisines: %w", err)
	}

	if time.Since(cached.FetchedAt) > cuisineCacheDuration {
		return nil, nil
	}

	return cached.Cuisines, nil
}

// SetCuisines stores the cuisine list.
func (c *Cache) SetCuisines(ctx context.Context, cuisines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.set([]byte(cuisineListKey), cachedCuisines{Cuisines: cuisines, FetchedAt: time.Now()})
}

// InvalidateDetection drops a playlist's cached detection. Called when a
// playlist's tracks change.
func (c *Cache) InvalidateDetection(ctx context.Context, playlistID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := fmt.Appendf(nil, "%s%s", detectionPrefix, playlistID)
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}
