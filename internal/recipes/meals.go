package recipes

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"

	"github.com/foodnjam/foodnjam-server/internal/domain"
)

// SearchMealsByName searches meals by name. An empty slice means no
// results.
func (c *Client) SearchMealsByName(ctx context.Context, query string) ([]domain.Meal, error) {
	q := url.Values{}
	q.Set("s", query)

	body, err := c.doRequest(ctx, "/search.php", q)
	if err != nil {
		return nil, wrapError("search", query, err)
	}

	var resp mealsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", query, fmt.Errorf("parse response: %w", err))
	}

	meals := make([]domain.Meal, 0, len(resp.Meals))
	for i := range resp.Meals {
		meals = append(meals, resp.Meals[i].toMeal())
	}
	return meals, nil
}

// GetMealByID fetches one meal's full record. Returns nil when the
// directory has no meal with that ID.
func (c *Client) GetMealByID(ctx context.Context, id string) (*domain.Meal, error) {
	q := url.Values{}
	q.Set("i", id)

	body, err := c.doRequest(ctx, "/lookup.php", q)
	if err != nil {
		return nil, wrapError("getMeal", id, err)
	}

	var resp mealsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("getMeal", id, fmt.Errorf("parse response: %w", err))
	}
	if len(resp.Meals) == 0 {
		return nil, nil
	}

	meal := resp.Meals[0].toMeal()
	return &meal, nil
}

// GetRandomMeal fetches one random meal from the directory.
func (c *Client) GetRandomMeal(ctx context.Context) (*domain.Meal, error) {
	body, err := c.doRequest(ctx, "/random.php", nil)
	if err != nil {
		return nil, wrapError("randomMeal", "", err)
	}

	var resp mealsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("randomMeal", "", fmt.Errorf("parse response: %w", err))
	}
	if len(resp.Meals) == 0 {
		return nil, nil
	}

	meal := resp.Meals[0].toMeal()
	return &meal, nil
}

// GetRandomMeals fetches up to count random meals. Individual failures
// are skipped, so the result can be shorter than count.
func (c *Client) GetRandomMeals(ctx context.Context, count int) ([]domain.Meal, error) {
	meals := make([]domain.Meal, 0, count)
	for range count {
		meal, err := c.GetRandomMeal(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return meals, err
			}
			c.log.Debug("random meal fetch failed, skipping", "error", err)
			continue
		}
		if meal != nil {
			meals = append(meals, *meal)
		}
	}
	return meals, nil
}

// GetMealsByCuisine lists meals for a cuisine and hydrates up to ten of
// them into full records. The filter endpoint returns only id, name,
// and thumbnail, so each hydration is one extra lookup. An empty slice
// means the directory has no meals for that cuisine.
func (c *Client) GetMealsByCuisine(ctx context.Context, cuisine string) ([]domain.Meal, error) {
	q := url.Values{}
	q.Set("a", cuisine)

	body, err := c.doRequest(ctx, "/filter.php", q)
	if err != nil {
		return nil, wrapError("mealsByCuisine", cuisine, err)
	}

	var resp mealsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("mealsByCuisine", cuisine, fmt.Errorf("parse response: %w", err))
	}

	stubs := resp.Meals
	if len(stubs) > maxHydratedMeals {
		stubs = stubs[:maxHydratedMeals]
	}

	meals := make([]domain.Meal, 0, len(stubs))
	for i := range stubs {
		meal, err := c.GetMealByID(ctx, stubs[i].ID)
		if err != nil {
			if ctx.Err() != nil {
				return meals, err
			}
			c.log.Debug("meal hydration failed, skipping", "meal_id", stubs[i].ID, "error", err)
			continue
		}
		if meal != nil {
			meals = append(meals, *meal)
		}
	}
	return meals, nil
}

// ListCuisines returns every cuisine (area) the directory knows.
func (c *Client) ListCuisines(ctx context.Context) ([]string, error) {
	q := url.Values{}
	q.Set("a", "list")

	body, err := c.doRequest(ctx, "/list.php", q)
	if err != nil {
		return nil, wrapError("listCuisines", "", err)
	}

	var resp areaList
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("listCuisines", "", fmt.Errorf("parse response: %w", err))
	}

	cuisines := make([]string, 0, len(resp.Meals))
	for _, entry := range resp.Meals {
		if entry.Area != "" {
			cuisines = append(cuisines, entry.Area)
		}
	}
	return cuisines, nil
}
