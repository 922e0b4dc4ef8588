package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	apperrors "github.com/foodnjam/foodnjam-server/internal/errors"
	"github.com/foodnjam/foodnjam-server/internal/id"
	"github.com/foodnjam/foodnjam-server/internal/images"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/store"
	"github.com/foodnjam/foodnjam-server/internal/validation"
)

// FavoritesService persists pairings a user wants to keep. Saving
// computes a BlurHash placeholder for the meal image so the mobile
// client can render the favorites list before images load.
type FavoritesService struct {
	store    store.Store
	hasher   *images.Hasher
	validate *validation.Validator
	log      *logger.Logger
}

// NewFavoritesService creates the favorites service.
func NewFavoritesService(st store.Store, hasher *images.Hasher, validate *validation.Validator, log *logger.Logger) *FavoritesService {
	return &FavoritesService{
		store:    st,
		hasher:   hasher,
		validate: validate,
		log:      log,
	}
}

// SavePairingRequest contains a pairing to favorite.
type SavePairingRequest struct {
	MealName      string `json:"meal_name" validate:"required,max=200"`
	Cuisine       string `json:"cuisine" validate:"required,max=100"`
	PlaylistID    string `json:"playlist_id" validate:"required,max=100"`
	PlaylistName  string `json:"playlist_name" validate:"required,max=200"`
	MealID        string `json:"meal_id,omitempty" validate:"max=100"`
	MealImage     string `json:"meal_image,omitempty" validate:"omitempty,url"`
	PlaylistImage string `json:"playlist_image,omitempty" validate:"omitempty,url"`
}

// Save favorites a pairing for the user.
// Returns an already-exists error when the same meal+playlist was
// saved before.
func (s *FavoritesService) Save(ctx context.Context, userID string, req SavePairingRequest) (*domain.SavedPairing, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.store.PairingExists(ctx, userID, req.MealName, req.PlaylistID)
	if err != nil {
		return nil, fmt.Errorf("check pairing: %w", err)
	}
	if exists {
		return nil, apperrors.AlreadyExists("pairing already saved")
	}

	pairingID, err := id.Generate("pairing")
	if err != nil {
		return nil, fmt.Errorf("generate pairing ID: %w", err)
	}

	pairing := &domain.SavedPairing{
		ID:            pairingID,
		UserID:        userID,
		MealName:      req.MealName,
		Cuisine:       req.Cuisine,
		PlaylistID:    req.PlaylistID,
		PlaylistName:  req.PlaylistName,
		MealID:        req.MealID,
		MealImage:     req.MealImage,
		PlaylistImage: req.PlaylistImage,
		CreatedAt:     time.Now(),
	}

	if req.MealImage != "" {
		hash, err := s.hasher.HashURL(ctx, req.MealImage)
		if err != nil {
			// A favorite without a placeholder is still a favorite.
			s.log.Warn("blurhash meal image", "url", req.MealImage, "error", err)
		} else {
			pairing.MealBlurhash = hash
		}
	}

	if err := s.store.CreatePairing(ctx, pairing); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("pairing already saved")
		}
		return nil, fmt.Errorf("save pairing: %w", err)
	}

	s.log.Info("pairing saved", "user_id", userID, "pairing_id", pairingID)

	return pairing, nil
}

// List returns the user's saved pairings, newest first.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]*domain.SavedPairing, error) {
	pairings, err := s.store.ListPairings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pairings: %w", err)
	}
	return pairings, nil
}

// Get returns one saved pairing.
func (s *FavoritesService) Get(ctx context.Context, userID, pairingID string) (*domain.SavedPairing, error) {
	pairing, err := s.store.GetPairing(ctx, userID, pairingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("pairing not found")
		}
		return nil, fmt.Errorf("get pairing: %w", err)
	}
	return pairing, nil
}

// Delete removes a saved pairing.
func (s *FavoritesService) Delete(ctx context.Context, userID, pairingID string) error {
	if err := s.store.DeletePairing(ctx, userID, pairingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("pairing not found")
		}
		return fmt.Errorf("delete pairing: %w", err)
	}

	s.log.Info("pairing deleted", "user_id", userID, "pairing_id", pairingID)
	return nil
}

// Stats aggregates the user's saved pairings.
func (s *FavoritesService) Stats(ctx context.Context, userID string) (*domain.PairingStats, error) {
	stats, err := s.store.GetPairingStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pairing stats: %w", err)
	}
	return stats, nil
}
