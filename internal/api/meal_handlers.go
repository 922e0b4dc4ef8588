package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/service"
)

func (s *Server) registerMealRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchMeals",
		Method:      http.MethodGet,
		Path:        "/api/v1/meals/search",
		Summary:     "Search meals",
		Description: "Searches the recipe directory by meal name",
		Tags:        []string{"Meals"},
	}, s.handleSearchMeals)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRandomMeal",
		Method:      http.MethodGet,
		Path:        "/api/v1/meals/random",
		Summary:     "Random meal",
		Description: "Returns a random meal from the recipe directory",
		Tags:        []string{"Meals"},
	}, s.handleGetRandomMeal)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMealsByCuisine",
		Method:      http.MethodGet,
		Path:        "/api/v1/meals",
		Summary:     "List meals by cuisine",
		Description: "Returns meal listings for a cuisine",
		Tags:        []string{"Meals"},
	}, s.handleListMealsByCuisine)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMeal",
		Method:      http.MethodGet,
		Path:        "/api/v1/meals/{id}",
		Summary:     "Get meal",
		Description: "Returns full meal details by ID",
		Tags:        []string{"Meals"},
	}, s.handleGetMeal)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCuisines",
		Method:      http.MethodGet,
		Path:        "/api/v1/cuisines",
		Summary:     "List cuisines",
		Description: "Returns all cuisines the recipe directory knows, with pairing support flags",
		Tags:        []string{"Meals"},
	}, s.handleListCuisines)
}

// === DTOs ===

// SearchMealsInput contains parameters for searching meals.
type SearchMealsInput struct {
	Query string `query:"q" minLength:"1" doc:"Meal name to search for"`
}

// MealsResponse contains a list of meals.
type MealsResponse struct {
	Meals []domain.Meal `json:"meals" doc:"Meals"`
}

// MealsOutput wraps the meals response for Huma.
type MealsOutput struct {
	Body MealsResponse
}

// MealOutput wraps a single meal for Huma.
type MealOutput struct {
	Body domain.Meal
}

// ListMealsByCuisineInput contains parameters for listing meals by cuisine.
type ListMealsByCuisineInput struct {
	Cuisine string `query:"cuisine" minLength:"1" doc:"Cuisine name, e.g. Italian"`
}

// GetMealInput contains parameters for fetching one meal.
type GetMealInput struct {
	ID string `path:"id" doc:"Meal ID"`
}

// CuisinesResponse contains the cuisines known to the recipe directory.
type CuisinesResponse struct {
	Cuisines []service.CuisineInfo `json:"cuisines" doc:"Cuisines with pairing support flags"`
}

// CuisinesOutput wraps the cuisines response for Huma.
type CuisinesOutput struct {
	Body CuisinesResponse
}

// === Handlers ===

func (s *Server) handleSearchMeals(ctx context.Context, input *SearchMealsInput) (*MealsOutput, error) {
	meals, err := s.services.Catalog.SearchMeals(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	return &MealsOutput{Body: MealsResponse{Meals: meals}}, nil
}

func (s *Server) handleGetRandomMeal(ctx context.Context, _ *struct{}) (*MealOutput, error) {
	meal, err := s.services.Catalog.GetRandomMeal(ctx)
	if err != nil {
		return nil, err
	}

	return &MealOutput{Body: *meal}, nil
}

func (s *Server) handleListMealsByCuisine(ctx context.Context, input *ListMealsByCuisineInput) (*MealsOutput, error) {
	meals, err := s.services.Catalog.GetMealsByCuisine(ctx, input.Cuisine)
	if err != nil {
		return nil, err
	}

	return &MealsOutput{Body: MealsResponse{Meals: meals}}, nil
}

func (s *Server) handleGetMeal(ctx context.Context, input *GetMealInput) (*MealOutput, error) {
	meal, err := s.services.Catalog.GetMeal(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &MealOutput{Body: *meal}, nil
}

func (s *Server) handleListCuisines(ctx context.Context, _ *struct{}) (*CuisinesOutput, error) {
	cuisines, err := s.services.Catalog.ListCuisines(ctx)
	if err != nil {
		return nil, err
	}

	return &CuisinesOutput{Body: CuisinesResponse{Cuisines: cuisines}}, nil
}
