package recipes

import (
	"strings"

	"github.com/foodnjam/foodnjam-server/internal/domain"
)

// rawMeal mirrors TheMealDB's meal object. Ingredients and measures
// arrive as twenty numbered columns each; toMeal collapses them.
type rawMeal struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
	Thumb        string `json:"strMealThumb"`
	Tags         string `json:"strTags"`
	Youtube      string `json:"strYoutube"`
	Source       string `json:"strSource"`

	Ingredient1  string `json:"strIngredient1"`
	Ingredient2  string `json:"strIngredient2"`
	Ingredient3  string `json:"strIngredient3"`
	Ingredient4  string `json:"strIngredient4"`
	Ingredient5  string `json:"strIngredient5"`
	Ingredient6  string `json:"strIngredient6"`
	Ingredient7  string `json:"strIngredient7"`
	Ingredient8  string `json:"strIngredient8"`
	Ingredient9  string `json:"strIngredient9"`
	Ingredient10 string `json:"strIngredient10"`
	Ingredient11 string `json:"strIngredient11"`
	Ingredient12 string `json:"strIngredient12"`
	Ingredient13 string `json:"strIngredient13"`
	Ingredient14 string `json:"strIngredient14"`
	Ingredient15 string `json:"strIngredient15"`
	Ingredient16 string `json:"strIngredient16"`
	Ingredient17 string `json:"strIngredient17"`
	Ingredient18 string `json:"strIngredient18"`
	Ingredient19 string `json:"strIngredient19"`
	Ingredient20 string `json:"strIngredient20"`

	Measure1  string `json:"strMeasure1"`
	Measure2  string `json:"strMeasure2"`
	Measure3  string `json:"strMeasure3"`
	Measure4  string `json:"strMeasure4"`
	Measure5  string `json:"strMeasure5"`
	Measure6  string `json:"strMeasure6"`
	Measure7  string `json:"strMeasure7"`
	Measure8  string `json:"strMeasure8"`
	Measure9  string `json:"strMeasure9"`
	Measure10 string `json:"strMeasure10"`
	Measure11 string `json:"strMeasure11"`
	Measure12 string `json:"strMeasure12"`
	Measure13 string `json:"strMeasure13"`
	Measure14 string `json:"strMeasure14"`
	Measure15 string `json:"strMeasure15"`
	Measure16 string `json:"strMeasure16"`
	Measure17 string `json:"strMeasure17"`
	Measure18 string `json:"strMeasure18"`
	Measure19 string `json:"strMeasure19"`
	Measure20 string `json:"strMeasure20"`
}

// mealsResponse is the envelope every meal endpoint returns. A null
// meals array means no results, not an error.
type mealsResponse struct {
	Meals []rawMeal `json:"meals"`
}

// areaList is the envelope of list.php?a=list.
type areaList struct {
	Meals []struct {
		Area string `json:"strArea"`
	} `json:"meals"`
}

func (r *rawMeal) ingredientColumns() []struct{ name, measure string } {
	return []struct{ name, measure string }{
		{r.Ingredient1, r.Measure1}, {r.Ingredient2, r.Measure2},
		{r.Ingredient3, r.Measure3}, {r.Ingredient4, r.Measure4},
		{r.Ingredient5, r.Measure5}, {r.Ingredient6, r.Measure6},
		{r.Ingredient7, r.Measure7}, {r.Ingredient8, r.Measure8},
		{r.Ingredient9, r.Measure9}, {r.Ingredient10, r.Measure10},
		{r.Ingredient11, r.Measure11}, {r.Ingredient12, r.Measure12},
		{r.Ingredient13, r.Measure13}, {r.Ingredient14, r.Measure14},
		{r.Ingredient15, r.Measure15}, {r.Ingredient16, r.Measure16},
		{r.Ingredient17, r.Measure17}, {r.Ingredient18, r.Measure18},
		{r.Ingredient19, r.Measure19}, {r.Ingredient20, r.Measure20},
	}
}

// toMeal converts a raw API meal into the domain record: numbered
// ingredient columns collapse into a list, the comma-separated tag
// string splits into a slice.
func (r *rawMeal) toMeal() domain.Meal {
	var ingredients []domain.Ingredient
	for _, col := range r.ingredientColumns() {
		name := strings.TrimSpace(col.name)
		if name == "" {
			continue
		}
		ingredients = append(ingredients, domain.Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(col.measure),
		})
	}

	var tags []string
	if r.Tags != "" {
		for _, tag := range strings.Split(r.Tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}

	return domain.Meal{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		Cuisine:      r.Area,
		Instructions: r.Instructions,
		Image:        r.Thumb,
		Tags:         tags,
		Ingredients:  ingredients,
		YoutubeURL:   r.Youtube,
		SourceURL:    r.Source,
	}
}
