package providers

import (
	"github.com/samber/do/v2"

	"github.com/foodnjam/foodnjam-server/internal/images"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/music"
	"github.com/foodnjam/foodnjam-server/internal/recipes"
)

// RecipesClientHandle wraps the recipe directory client with shutdown capability.
type RecipesClientHandle struct {
	*recipes.Client
}

// Shutdown implements do.Shutdownable.
func (h *RecipesClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideRecipesClient provides the TheMealDB client.
func ProvideRecipesClient(i do.Injector) (*RecipesClientHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return &RecipesClientHandle{Client: recipes.New(log)}, nil
}

// MusicClientHandle wraps the music catalog client with shutdown capability.
type MusicClientHandle struct {
	*music.Client
}

// Shutdown implements do.Shutdownable.
func (h *MusicClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideMusicClient provides the Spotify Web API client.
func ProvideMusicClient(i do.Injector) (*MusicClientHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return &MusicClientHandle{Client: music.New(log)}, nil
}

// ProvideImageHasher provides the blurhash computer for favorite images.
func ProvideImageHasher(i do.Injector) (*images.Hasher, error) {
	return images.NewHasher(), nil
}
