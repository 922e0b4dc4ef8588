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
)

// SessionService manages refresh-token sessions. Access tokens are
// short-lived PASETOs; the session row backs the refresh token that
// rotates on every use.
type SessionService struct {
	store  store.Store
	tokens *auth.TokenService
	log    *logger.Logger
}

// NewSessionService creates a new session management service.
func NewSessionService(st store.Store, tokens *auth.TokenService, log *logger.Logger) *SessionService {
	return &SessionService{store: st, tokens: tokens, log: log}
}

// SessionResponse contains the tokens issued for a session.
type SessionResponse struct {
	SessionID    string `json:"session_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // Access token lifetime in seconds
}

// CreateSession generates tokens and creates a new session for a user.
func (s *SessionService) CreateSession(ctx context.Context, user *domain.User, deviceName string) (*SessionResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("session")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		DeviceName:       deviceName,
		ExpiresAt:        now.Add(s.tokens.RefreshTokenDuration()),
		LastUsedAt:       now,
		CreatedAt:        now,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.Debug("session created", "user_id", user.ID, "session_id", sessionID)

	return &SessionResponse{
		SessionID:    sessionID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokens.AccessTokenDuration().Seconds()),
	}, nil
}

// Refresh exchanges a refresh token for a new token pair. The refresh
// token rotates: the presented token is invalid after this call.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *SessionResponse, error) {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperrors.Unauthorized("invalid refresh token")
		}
		return nil, nil, fmt.Errorf("lookup session: %w", err)
	}

	now := time.Now()
	if session.IsExpired(now) {
		// Expired rows are useless; drop eagerly.
		if err := s.store.DeleteSession(ctx, session.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, nil, apperrors.TokenExpired("session expired, please log in again")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperrors.Unauthorized("user no longer exists")
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token: %w", err)
	}
	newRefreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, nil, fmt.Errorf("generate refresh token: %w", err)
	}

	session.RefreshTokenHash = auth.HashRefreshToken(newRefreshToken)
	session.LastUsedAt = now
	session.ExpiresAt = now.Add(s.tokens.RefreshTokenDuration())
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("rotate session: %w", err)
	}

	return user, &SessionResponse{
		SessionID:    session.ID,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int(s.tokens.AccessTokenDuration().Seconds()),
	}, nil
}

// Logout revokes the session belonging to a refresh token. Unknown
// tokens are not an error; logout is idempotent.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup session: %w", err)
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LogoutAll revokes every session for a user.
func (s *SessionService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.store.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}

// CleanupExpired removes sessions past their expiry.
func (s *SessionService) CleanupExpired(ctx context.Context) error {
	n, err := s.store.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	if n > 0 {
		s.log.Info("expired sessions removed", "count", n)
	}
	return nil
}
