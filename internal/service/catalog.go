package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodnjam/foodnjam-server/internal/cache"
	"github.com/foodnjam/foodnjam-server/internal/domain"
	apperrors "github.com/foodnjam/foodnjam-server/internal/errors"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/pairing"
	"github.com/foodnjam/foodnjam-server/internal/recipes"
)

// CatalogService exposes recipe browsing backed by TheMealDB with a
// local cache in front of the slower lookups. It also serves as the
// meal source for the music-to-meal direction.
type CatalogService struct {
	recipes *recipes.Client
	cache   *cache.Cache
	table   *pairing.Table
	log     *logger.Logger
}

var _ pairing.RecipeDirectory = (*CatalogService)(nil)

// NewCatalogService creates a new recipe catalog service.
func NewCatalogService(client *recipes.Client, c *cache.Cache, table *pairing.Table, log *logger.Logger) *CatalogService {
	return &CatalogService{recipes: client, cache: c, table: table, log: log}
}

// SearchMeals searches meals by name. Results are not cached; queries
// are too varied to be worth the space.
func (s *CatalogService) SearchMeals(ctx context.Context, query string) ([]domain.Meal, error) {
	meals, err := s.recipes.SearchMealsByName(ctx, query)
	if err != nil {
		return nil, apperrors.Unavailable("recipe search failed").WithCause(err)
	}
	return meals, nil
}

// GetMeal fetches one meal by ID, preferring the cache.
func (s *CatalogService) GetMeal(ctx context.Context, mealID string) (*domain.Meal, error) {
	if cached, err := s.cache.GetMeal(ctx, mealID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.Warn("meal cache read", "meal_id", mealID, "error", err)
	}

	meal, err := s.recipes.GetMealByID(ctx, mealID)
	if err != nil {
		return nil, apperrors.Unavailable("recipe lookup failed").WithCause(err)
	}
	if meal == nil {
		return nil, apperrors.NotFound("meal not found")
	}

	if err := s.cache.SetMeal(ctx, meal); err != nil {
		s.log.Warn("meal cache write", "meal_id", mealID, "error", err)
	}
	return meal, nil
}

// GetMealsByCuisine lists meals for a cuisine, preferring the cache.
// The cuisine is normalized first so "USA" and "American" share an entry.
func (s *CatalogService) GetMealsByCuisine(ctx context.Context, cuisine string) ([]domain.Meal, error) {
	cuisine = pairing.NormalizeCuisine(cuisine)

	if cached, err := s.cache.GetMealsByCuisine(ctx, cuisine); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.Warn("cuisine cache read", "cuisine", cuisine, "error", err)
	}

	meals, err := s.recipes.GetMealsByCuisine(ctx, cuisine)
	if err != nil {
		return nil, fmt.Errorf("meals by cuisine: %w", err)
	}

	if len(meals) > 0 {
		if err := s.cache.SetMealsByCuisine(ctx, cuisine, meals); err != nil {
			s.log.Warn("cuisine cache write", "cuisine", cuisine, "error", err)
		}
	}
	return meals, nil
}

// GetRandomMeal fetches a single random meal. Never cached.
func (s *CatalogService) GetRandomMeal(ctx context.Context) (*domain.Meal, error) {
	meal, err := s.recipes.GetRandomMeal(ctx)
	if err != nil {
		return nil, apperrors.Unavailable("random meal failed").WithCause(err)
	}
	if meal == nil {
		// The directory answers {"meals":null} when it has nothing to offer.
		return nil, apperrors.NotFound("no meal available")
	}
	return meal, nil
}

// GetRandomMeals fetches up to count random meals.
func (s *CatalogService) GetRandomMeals(ctx context.Context, count int) ([]domain.Meal, error) {
	meals, err := s.recipes.GetRandomMeals(ctx, count)
	if err != nil {
		return nil, apperrors.Unavailable("random meals failed").WithCause(err)
	}
	return meals, nil
}

// CuisineInfo is one entry of the cuisine listing, annotated with
// whether the pairing table has a dedicated genre for it.
type CuisineInfo struct {
	Name      string `json:"name"`
	Supported bool   `json:"supported"`
}

// ListCuisines returns the cuisines TheMealDB knows, annotated against
// the pairing table. The upstream list is cached.
func (s *CatalogService) ListCuisines(ctx context.Context) ([]CuisineInfo, error) {
	names, err := s.cache.GetCuisines(ctx)
	if err != nil {
		s.log.Warn("cuisine list cache read", "error", err)
	}

	if names == nil {
		names, err = s.recipes.ListCuisines(ctx)
		if err != nil {
			if errors.Is(err, recipes.ErrNotFound) {
				return nil, apperrors.NotFound("cuisine list unavailable")
			}
			return nil, apperrors.Unavailable("cuisine list failed").WithCause(err)
		}
		if err := s.cache.SetCuisines(ctx, names); err != nil {
			s.log.Warn("cuisine list cache write", "error", err)
		}
	}

	infos := make([]CuisineInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, CuisineInfo{
			Name:      name,
			Supported: s.table.IsSupportedCuisine(name),
		})
	}
	return infos, nil
}
