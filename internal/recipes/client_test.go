package recipes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodnjam/foodnjam-server/internal/logger"
)

const arrabiataJSON = `{
	"idMeal": "52771",
	"strMeal": "Spicy Arrabiata Penne",
	"strCategory": "Vegetarian",
	"strArea": "Italian",
	"strInstructions": "Bring a large pot of water to a boil.",
	"strMealThumb": "https://www.themealdb.com/images/media/meals/ustsqw1468250014.jpg",
	"strTags": "Pasta,Curry",
	"strYoutube": "https://www.youtube.com/watch?v=1IszT_guI08",
	"strIngredient1": "penne rigate",
	"strIngredient2": "olive oil",
	"strIngredient3": "garlic",
	"strIngredient4": "",
	"strIngredient5": null,
	"strMeasure1": "1 pound",
	"strMeasure2": "1/4 cup",
	"strMeasure3": "3 cloves",
	"strMeasure4": "",
	"strMeasure5": null
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewWithBaseURL(server.URL, logger.New(logger.Config{Writer: io.Discard, Format: "json"}))
	t.Cleanup(client.Close)
	return client
}

func TestSearchMealsByName(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		assert.Equal(t, "arrabiata", r.URL.Query().Get("s"))
		w.Write([]byte(`{"meals": [` + arrabiataJSON + `]}`))
	}))

	meals, err := client.SearchMealsByName(context.Background(), "arrabiata")
	require.NoError(t, err)
	require.Len(t, meals, 1)

	meal := meals[0]
	assert.Equal(t, "52771", meal.ID)
	assert.Equal(t, "Spicy Arrabiata Penne", meal.Name)
	assert.Equal(t, "Italian", meal.Cuisine)
	assert.Equal(t, []string{"Pasta", "Curry"}, meal.Tags)
	// Empty and null ingredient columns are dropped.
	require.Len(t, meal.Ingredients, 3)
	assert.Equal(t, "penne rigate", meal.Ingredients[0].Name)
	assert.Equal(t, "1 pound", meal.Ingredients[0].Measure)
}

func TestSearchMealsByName_NoResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The API signals no results with a null meals array.
		w.Write([]byte(`{"meals": null}`))
	}))

	meals, err := client.SearchMealsByName(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestGetMealByID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup.php", r.URL.Path)
		assert.Equal(t, "52771", r.URL.Query().Get("i"))
		w.Write([]byte(`{"meals": [` + arrabiataJSON + `]}`))
	}))

	meal, err := client.GetMealByID(context.Background(), "52771")
	require.NoError(t, err)
	require.NotNil(t, meal)
	assert.Equal(t, "Spicy Arrabiata Penne", meal.Name)
}

func TestGetMealByID_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals": null}`))
	}))

	meal, err := client.GetMealByID(context.Background(), "0")
	require.NoError(t, err)
	assert.Nil(t, meal)
}

func TestGetRandomMeal(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/random.php", r.URL.Path)
		w.Write([]byte(`{"meals": [` + arrabiataJSON + `]}`))
	}))

	meal, err := client.GetRandomMeal(context.Background())
	require.NoError(t, err)
	require.NotNil(t, meal)
	assert.Equal(t, "52771", meal.ID)
}

func TestGetMealsByCuisine_HydratesDetails(t *testing.T) {
	var lookups int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filter.php":
			assert.Equal(t, "Italian", r.URL.Query().Get("a"))
			// Filter returns stub records only.
			w.Write([]byte(`{"meals": [
				{"idMeal": "52771", "strMeal": "Spicy Arrabiata Penne", "strMealThumb": "thumb.jpg"},
				{"idMeal": "52835", "strMeal": "Fettucine Alfredo", "strMealThumb": "thumb2.jpg"}
			]}`))
		case "/lookup.php":
			lookups++
			w.Write([]byte(`{"meals": [` + arrabiataJSON + `]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	meals, err := client.GetMealsByCuisine(context.Background(), "Italian")
	require.NoError(t, err)
	assert.Len(t, meals, 2)
	assert.Equal(t, 2, lookups)
	// Hydrated records carry full fields the filter endpoint omits.
	assert.NotEmpty(t, meals[0].Instructions)
}

func TestGetMealsByCuisine_CapsHydration(t *testing.T) {
	var lookups int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filter.php":
			stubs := `{"idMeal": "1", "strMeal": "A", "strMealThumb": "t.jpg"}`
			for range 14 {
				stubs += `,{"idMeal": "1", "strMeal": "A", "strMealThumb": "t.jpg"}`
			}
			w.Write([]byte(`{"meals": [` + stubs + `]}`))
		case "/lookup.php":
			lookups++
			w.Write([]byte(`{"meals": [` + arrabiataJSON + `]}`))
		}
	}))

	meals, err := client.GetMealsByCuisine(context.Background(), "Italian")
	require.NoError(t, err)
	assert.Len(t, meals, 10)
	assert.Equal(t, 10, lookups)
}

func TestGetMealsByCuisine_Empty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals": null}`))
	}))

	meals, err := client.GetMealsByCuisine(context.Background(), "Atlantean")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestListCuisines(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list.php", r.URL.Path)
		assert.Equal(t, "list", r.URL.Query().Get("a"))
		w.Write([]byte(`{"meals": [{"strArea": "American"}, {"strArea": "British"}, {"strArea": "Italian"}]}`))
	}))

	cuisines, err := client.ListCuisines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"American", "British", "Italian"}, cuisines)
}

func TestClient_ServerErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.SearchMealsByName(context.Background(), "anything")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_ErrorIncludesOperation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetMealsByCuisine(context.Background(), "Italian")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mealsByCuisine")
	assert.Contains(t, err.Error(), "Italian")
}
