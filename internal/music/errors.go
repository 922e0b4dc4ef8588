package music

import (
	"errors"
	"fmt"
)

// Sentinel errors for Spotify Web API operations.
var (
	ErrUnauthorized = errors.New("spotify: access token expired or invalid")
	ErrForbidden    = errors.New("spotify: insufficient scope")
	ErrNotFound     = errors.New("spotify: not found")
	ErrRateLimited  = errors.New("spotify: rate limited by server")
	ErrServer       = errors.New("spotify: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // Operation: "getPlaylist", "getTracks", "audioFeatures", ...
	Key string // Playlist ID, search query, if applicable
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("spotify %s [%s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("spotify %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, key string, err error) error {
	return &Error{Op: op, Key: key, Err: err}
}
