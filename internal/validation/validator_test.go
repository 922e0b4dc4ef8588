package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/foodnjam/foodnjam-server/internal/errors"
	"github.com/foodnjam/foodnjam-server/internal/validation"
)

type saveRequest struct {
	MealName   string `json:"meal_name" validate:"required,min=1,max=200"`
	Cuisine    string `json:"cuisine" validate:"required"`
	PlaylistID string `json:"playlist_id" validate:"required"`
}

func TestValidate_Passes(t *testing.T) {
	v := validation.New()

	err := v.Validate(saveRequest{
		MealName:   "Spaghetti Carbonara",
		Cuisine:    "Italian",
		PlaylistID: "37i9dQZF1DX4wta20PHgwo",
	})

	assert.NoError(t, err)
}

func TestValidate_MissingFields(t *testing.T) {
	v := validation.New()

	err := v.Validate(saveRequest{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["meal_name"])
	assert.Equal(t, "is required", details["cuisine"])
	assert.Equal(t, "is required", details["playlist_id"])
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(saveRequest{MealName: "x", Cuisine: "Italian"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	_, hasGoName := details["PlaylistID"]
	assert.False(t, hasGoName, "should use json tag name, not Go field name")
	assert.Contains(t, details, "playlist_id")
}
