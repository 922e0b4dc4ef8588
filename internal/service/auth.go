// Package service implements the application services between the HTTP
// API and the stores, clients, and pairing engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodnjam/foodnjam-server/internal/auth"
	"github.com/foodnjam/foodnjam-server/internal/domain"
	apperrors "github.com/foodnjam/foodnjam-server/internal/errors"
	"github.com/foodnjam/foodnjam-server/internal/id"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/store"
	"github.com/foodnjam/foodnjam-server/internal/validation"
)

// AuthService handles account registration and login. Session lifecycle
// is delegated to SessionService.
type AuthService struct {
	store    store.Store
	sessions *SessionService
	validate *validation.Validator
	log      *logger.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(st store.Store, sessions *SessionService, validate *validation.Validator, log *logger.Logger) *AuthService {
	return &AuthService{
		store:    st,
		sessions: sessions,
		validate: validate,
		log:      log,
	}
}

// RegisterRequest contains new account data.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=1024"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	DeviceName  string `json:"device_name,omitempty"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	DeviceName string `json:"device_name,omitempty"`
}

// AuthResponse contains the authenticated user and their session tokens.
type AuthResponse struct {
	User *domain.User `json:"user"`
	SessionResponse
}

// Register creates a new account and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		DisplayName:  req.DisplayName,
		LastLoginAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	sessionResp, err := s.sessions.CreateSession(ctx, user, req.DeviceName)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("user registered", "user_id", userID)

	return &AuthResponse{User: user, SessionResponse: *sessionResp}, nil
}

// Login verifies credentials and creates a session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same response for unknown email and wrong password.
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	user.LastLoginAt = time.Now()
	user.UpdatedAt = user.LastLoginAt
	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.log.Warn("update last login", "user_id", user.ID, "error", err)
	}

	sessionResp, err := s.sessions.CreateSession(ctx, user, req.DeviceName)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("user logged in", "user_id", user.ID)

	return &AuthResponse{User: user, SessionResponse: *sessionResp}, nil
}

// GetProfile returns the user's account record.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
