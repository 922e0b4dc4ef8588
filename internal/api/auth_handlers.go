package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register",
		Description: "Creates a new account and returns a session",
		Tags:        []string{"Auth"},
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Login",
		Description: "Authenticates with email and password",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh session",
		Description: "Exchanges a refresh token for a new token pair",
		Tags:        []string{"Auth"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Logout",
		Description: "Revokes the session behind a refresh token",
		Tags:        []string{"Auth"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "logoutAll",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout-all",
		Summary:     "Logout everywhere",
		Description: "Revokes every session of the current user",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLogoutAll)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Get profile",
		Description: "Returns the current user's profile",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfile)
}

// === DTOs ===

// UserResponse contains user data in API responses.
// The password hash never leaves the service layer.
type UserResponse struct {
	ID            string    `json:"id" doc:"User ID"`
	Email         string    `json:"email" doc:"Email address"`
	DisplayName   string    `json:"display_name" doc:"Display name"`
	SpotifyLinked bool      `json:"spotify_linked" doc:"Whether a Spotify account is linked"`
	SpotifyUserID string    `json:"spotify_user_id,omitempty" doc:"Linked Spotify user ID"`
	LastLoginAt   time.Time `json:"last_login_at" doc:"Last login time"`
	CreatedAt     time.Time `json:"created_at" doc:"Account creation time"`
}

// AuthResponse contains a user plus their new session tokens.
type AuthResponse struct {
	User         UserResponse `json:"user" doc:"Authenticated user"`
	SessionID    string       `json:"session_id" doc:"Session ID"`
	AccessToken  string       `json:"access_token" doc:"PASETO access token"`
	RefreshToken string       `json:"refresh_token" doc:"Opaque refresh token"`
	ExpiresIn    int          `json:"expires_in" doc:"Access token lifetime in seconds"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Email       string `json:"email" doc:"Email address"`
	Password    string `json:"password" doc:"Password, at least 8 characters"`
	DisplayName string `json:"display_name" doc:"Display name"`
	DeviceName  string `json:"device_name,omitempty" doc:"Device label for the session"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email      string `json:"email" doc:"Email address"`
	Password   string `json:"password" doc:"Password"`
	DeviceName string `json:"device_name,omitempty" doc:"Device label for the session"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// RefreshRequest is the request body for refreshing a session.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" doc:"Opaque refresh token"`
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	Body RefreshRequest
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Body RefreshRequest
}

// LogoutAllInput contains parameters for revoking all sessions.
type LogoutAllInput struct {
	Authorization string `header:"Authorization"`
}

// MessageResponse is a simple success message response.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// GetProfileInput contains parameters for fetching the current profile.
type GetProfileInput struct {
	Authorization string `header:"Authorization"`
}

// UserOutput wraps a user response for Huma.
type UserOutput struct {
	Body UserResponse
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		SpotifyLinked: u.HasSpotifyLinked(),
		SpotifyUserID: u.SpotifyUserID,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

func toAuthResponse(resp *service.AuthResponse) AuthResponse {
	return AuthResponse{
		User:         toUserResponse(resp.User),
		SessionID:    resp.SessionID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Email:       input.Body.Email,
		Password:    input.Body.Password,
		DisplayName: input.Body.DisplayName,
		DeviceName:  input.Body.DeviceName,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: toAuthResponse(resp)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:      input.Body.Email,
		Password:   input.Body.Password,
		DeviceName: input.Body.DeviceName,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: toAuthResponse(resp)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	user, session, err := s.services.Sessions.Refresh(ctx, input.Body.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		Body: AuthResponse{
			User:         toUserResponse(user),
			SessionID:    session.SessionID,
			AccessToken:  session.AccessToken,
			RefreshToken: session.RefreshToken,
			ExpiresIn:    session.ExpiresIn,
		},
	}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Sessions.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "logged out"}}, nil
}

func (s *Server) handleLogoutAll(ctx context.Context, input *LogoutAllInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Sessions.LogoutAll(ctx, userID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "all sessions revoked"}}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, input *GetProfileInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}
