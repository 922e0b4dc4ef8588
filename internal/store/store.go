// Package store defines the persistence interfaces for the Food n' Jam
// server and the errors its implementations return.
package store

import (
	"context"
	"time"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	apperrors "github.com/foodnjam/foodnjam-server/internal/errors"
)

// Sentinel errors returned by store implementations. Callers match with
// errors.Is; the codes map to HTTP statuses at the API boundary.
var (
	ErrNotFound      = apperrors.NotFound("record not found")
	ErrAlreadyExists = apperrors.AlreadyExists("record already exists")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// SpotifyTokenStore persists per-user Spotify OAuth credentials.
// Token values are expected to be encrypted before they reach the store.
type SpotifyTokenStore interface {
	UpsertSpotifyTokens(ctx context.Context, tokens *domain.SpotifyTokens) error
	GetSpotifyTokens(ctx context.Context, userID string) (*domain.SpotifyTokens, error)
	DeleteSpotifyTokens(ctx context.Context, userID string) error
}

// PairingStore persists favorited meal+playlist pairings.
type PairingStore interface {
	CreatePairing(ctx context.Context, pairing *domain.SavedPairing) error
	GetPairing(ctx context.Context, userID, id string) (*domain.SavedPairing, error)
	ListPairings(ctx context.Context, userID string) ([]*domain.SavedPairing, error)
	PairingExists(ctx context.Context, userID, mealName, playlistID string) (bool, error)
	DeletePairing(ctx context.Context, userID, id string) error
	GetPairingStats(ctx context.Context, userID string) (*domain.PairingStats, error)
}

// Store is the full persistence surface the server depends on.
type Store interface {
	UserStore
	SessionStore
	SpotifyTokenStore
	PairingStore

	Close() error
}
