// Package recipes is a client for TheMealDB, the public recipe
// directory the pairing engine samples meals from.
package recipes

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
	defaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

	// TheMealDB is a free community API; keep traffic polite.
	defaultRPS   = 2.0
	defaultBurst = 5

	defaultTimeout = 15 * time.Second

	// maxHydratedMeals caps how many filter results get hydrated into
	// full meal records per cuisine lookup. The filter endpoint only
	// returns id, name, and thumbnail, so each full record costs one
	// extra request.
	maxHydratedMeals = 10
)

// Client is a rate-limited TheMealDB API client.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *ratelimit.KeyedRateLimiter
	log     *logger.Logger
}

// New creates a client against the public TheMealDB endpoint.
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

// doRequest executes a GET against the API with rate limiting.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	// The API is unauthenticated, so all requests share one bucket.
	if err := c.limiter.Wait(ctx, "mealdb"); err != nil {
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
	req.Header.Set("User-Agent", "FoodnJam/1.0")

	c.log.Debug("mealdb request", "path", path)

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
