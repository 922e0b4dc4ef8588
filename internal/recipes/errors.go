package recipes

import (
	"errors"
	"fmt"
)

// Sentinel errors for TheMealDB API operations.
var (
	ErrNotFound    = errors.New("mealdb: not found")
	ErrRateLimited = errors.New("mealdb: rate limited by server")
	ErrServer      = errors.New("mealdb: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // Operation: "search", "getMeal", "mealsByCuisine", ...
	Key string // Search query, meal ID, or cuisine, if applicable
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("mealdb %s [%s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("mealdb %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, key string, err error) error {
	return &Error{Op: op, Key: key, Err: err}
}
