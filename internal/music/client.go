// Package music is a client for the Spotify Web API, the catalog the
// pairing engine reads playlists, tracks, and audio features from.
// Every call needs a user access token obtained via the auth package.
package music

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"

	// Per-user request budget against the Web API.
	defaultRPS   = 5.0
	defaultBurst = 10

	defaultTimeout = 15 * time.Second

	// maxFeatureIDs is the Web API's cap on ids per audio-features
	// call; longer requests are chunked.
	maxFeatureIDs = 100

	// pageLimit is the page size for playlist and track listings.
	pageLimit = 50
)

// Client is a rate-limited Spotify Web API client. It holds no
// credentials; callers pass a user access token per call and the
// limiter buckets by that token.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *ratelimit.KeyedRateLimiter
	log     *logger.Logger
}

// New creates a client against the public Spotify endpoint.
func New(log *logger.Logger) *Client {
	return NewWithBaseURL(defaultBaseURL, log)
}

// NewWithBaseURL creates a client against a custom endpoint. Used by
// tests with an httptest server.
func NewWithBaseURL(baseURL string, log *logger.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		log:     log,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// doRequest executes an authenticated GET with per-token rate limiting.
func (c *Client) doRequest(ctx context.Context, accessToken, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, accessToken); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	c.log.Debug("spotify request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusForbidden:
		return nil, ErrForbidden
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
