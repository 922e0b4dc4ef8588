package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMeal_HasTag(t *testing.T) {
	meal := Meal{
		Name: "Spaghetti Carbonara",
		Tags: []string{"Comfort Food", "Pasta"},
	}

	assert.True(t, meal.HasTag("comfort"))
	assert.True(t, meal.HasTag("COMFORT"))
	assert.True(t, meal.HasTag("pasta"))
	assert.False(t, meal.HasTag("spicy"))

	empty := Meal{Name: "Mystery Meal"}
	assert.False(t, empty.HasTag("comfort"))
}

func TestAverageFeatures(t *testing.T) {
	features := []AudioFeatures{
		{Danceability: 0.8, Energy: 0.6, Valence: 0.4, Acousticness: 0.2, Instrumentalness: 0.0, Tempo: 120},
		{Danceability: 0.4, Energy: 0.8, Valence: 0.6, Acousticness: 0.4, Instrumentalness: 0.2, Tempo: 140},
	}

	avg := AverageFeatures(features)
	assert.InDelta(t, 0.6, avg.Danceability, 1e-9)
	assert.InDelta(t, 0.7, avg.Energy, 1e-9)
	assert.InDelta(t, 0.5, avg.Valence, 1e-9)
	assert.InDelta(t, 0.3, avg.Acousticness, 1e-9)
	assert.InDelta(t, 0.1, avg.Instrumentalness, 1e-9)
	assert.InDelta(t, 130, avg.Tempo, 1e-9)
}

func TestAverageFeatures_Empty(t *testing.T) {
	avg := AverageFeatures(nil)
	assert.Equal(t, AudioFeatures{}, avg)
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	session := Session{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, session.IsExpired(now))
	assert.True(t, session.IsExpired(now.Add(2*time.Hour)))
}

func TestSpotifyTokens_NeedsRefresh(t *testing.T) {
	now := time.Now()
	tokens := SpotifyTokens{ExpiresAt: now.Add(10 * time.Minute)}

	// More than 5 minutes of validity left.
	assert.False(t, tokens.NeedsRefresh(now, 5*time.Minute))

	// Expires inside the threshold window.
	assert.True(t, tokens.NeedsRefresh(now.Add(6*time.Minute), 5*time.Minute))

	// Already expired.
	assert.True(t, tokens.NeedsRefresh(now.Add(time.Hour), 5*time.Minute))
}

func TestUser_HasSpotifyLinked(t *testing.T) {
	user := User{ID: "user-1"}
	assert.False(t, user.HasSpotifyLinked())

	user.SpotifyUserID = "spotify-user"
	assert.True(t, user.HasSpotifyLinked())
}
