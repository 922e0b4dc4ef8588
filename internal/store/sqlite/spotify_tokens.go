package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/store"
)

// UpsertSpotifyTokens inserts or replaces a user's Spotify credentials.
// Token values must already be encrypted by the caller.
func (s *Store) UpsertSpotifyTokens(ctx context.Context, tokens *domain.SpotifyTokens) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO spotify_tokens (
			user_id, access_token, refresh_token, scope, expires_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			scope = excluded.scope,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		tokens.UserID,
		tokens.AccessToken,
		tokens.RefreshToken,
		nullString(tokens.Scope),
		formatTime(tokens.ExpiresAt),
		formatTime(tokens.UpdatedAt),
	)
	return err
}

// GetSpotifyTokens retrieves a user's Spotify credentials.
// Returns store.ErrNotFound if the user has not linked Spotify.
func (s *Store) GetSpotifyTokens(ctx context.Context, userID string) (*domain.SpotifyTokens, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, access_token, refresh_token, scope, expires_at, updated_at
		FROM spotify_tokens WHERE user_id = ?`, userID)

	var t domain.SpotifyTokens
	var (
		scope     sql.NullString
		expiresAt string
		updatedAt string
	)

	err := row.Scan(&t.UserID, &t.AccessToken, &t.RefreshToken, &scope, &expiresAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.Scope = fromNullString(scope)

	t.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// DeleteSpotifyTokens removes a user's Spotify credentials. Used when the
// user unlinks their account.
// Returns store.ErrNotFound if no credentials exist.
func (s *Store) DeleteSpotifyTokens(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM spotify_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
