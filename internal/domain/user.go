package domain

import "time"

// User represents an authenticated account in the system.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	DisplayName  string `json:"display_name"`
	// SpotifyUserID is set once the user links their Spotify account.
	SpotifyUserID string    `json:"spotify_user_id,omitempty"`
	LastLoginAt   time.Time `json:"last_login_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasSpotifyLinked reports whether the user has connected a Spotify account.
func (u *User) HasSpotifyLinked() bool {
	return u.SpotifyUserID != ""
}
