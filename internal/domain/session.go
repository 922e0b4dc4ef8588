package domain

import "time"

// Session tracks a user's refresh-token session. The access token is a
// short-lived PASETO; the session row backs the long-lived refresh token.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"` // SHA-256 of the refresh token, never the token itself
	DeviceName       string    `json:"device_name,omitempty"`
	ExpiresAt        time.Time `json:"expires_at"`
	LastUsedAt       time.Time `json:"last_used_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsExpired reports whether the session can no longer be refreshed.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SpotifyTokens holds a user's Spotify OAuth credentials. The refresh
// token is encrypted at rest; AccessToken lives only in memory and the
// short-lived store row.
type SpotifyTokens struct {
	UserID       string    `json:"user_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NeedsRefresh reports whether the access token expires within the
// given threshold and should be refreshed before use.
func (t *SpotifyTokens) NeedsRefresh(now time.Time, threshold time.Duration) bool {
	return now.Add(threshold).After(t.ExpiresAt)
}
