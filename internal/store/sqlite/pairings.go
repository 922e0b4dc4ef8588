package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/store"
)

// pairingColumns is the ordered list of columns selected in pairing queries.
// Must match the scan order in scanPairing.
const pairingColumns = `id, user_id, meal_name, cuisine, playlist_id, playlist_name,
	meal_id, meal_image, meal_image_blurhash, playlist_image, created_at`

// scanPairing scans a sql.Row (or sql.Rows via its Scan method) into a domain.SavedPairing.
func scanPairing(scanner interface{ Scan(dest ...any) error }) (*domain.SavedPairing, error) {
	var p domain.SavedPairing

	var (
		mealID        sql.NullString
		mealImage     sql.NullString
		mealBlurhash  sql.NullString
		playlistImage sql.NullString
		createdAt     string
	)

	err := scanner.Scan(
		&p.ID,
		&p.UserID,
		&p.MealName,
		&p.Cuisine,
		&p.PlaylistID,
		&p.PlaylistName,
		&mealID,
		&mealImage,
		&mealBlurhash,
		&playlistImage,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	p.MealID = fromNullString(mealID)
	p.MealImage = fromNullString(mealImage)
	p.MealBlurhash = fromNullString(mealBlurhash)
	p.PlaylistImage = fromNullString(playlistImage)

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePairing inserts a favorited pairing.
// Returns store.ErrAlreadyExists if the user already saved this
// meal+playlist combination.
func (s *Store) CreatePairing(ctx context.Context, pairing *domain.SavedPairing) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pairings (
			id, user_id, meal_name, cuisine, playlist_id, playlist_name,
			meal_id, meal_image, meal_image_blurhash, playlist_image, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pairing.ID,
		pairing.UserID,
		pairing.MealName,
		pairing.Cuisine,
		pairing.PlaylistID,
		pairing.PlaylistName,
		nullString(pairing.MealID),
		nullString(pairing.MealImage),
		nullString(pairing.MealBlurhash),
		nullString(pairing.PlaylistImage),
		formatTime(pairing.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPairing retrieves one of a user's saved pairings by ID.
// Returns store.ErrNotFound if it does not exist or belongs to another user.
func (s *Store) GetPairing(ctx context.Context, userID, id string) (*domain.SavedPairing, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+pairingColumns+` FROM pairings WHERE id = ? AND user_id = ?`, id, userID)

	p, err := scanPairing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPairings returns a user's saved pairings, newest first.
func (s *Store) ListPairings(ctx context.Context, userID string) ([]*domain.SavedPairing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pairingColumns+` FROM pairings WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairings []*domain.SavedPairing
	for rows.Next() {
		p, err := scanPairing(rows)
		if err != nil {
			return nil, err
		}
		pairings = append(pairings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pairings, nil
}

// PairingExists reports whether the user already saved this meal+playlist
// combination.
func (s *Store) PairingExists(ctx context.Context, userID, mealName, playlistID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM pairings
		WHERE user_id = ? AND meal_name = ? AND playlist_id = ?`,
		userID, mealName, playlistID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeletePairing removes one of a user's saved pairings.
// Returns store.ErrNotFound if it does not exist or belongs to another user.
func (s *Store) DeletePairing(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM pairings WHERE id = ? AND user_id = ?`, id, userID)
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

// GetPairingStats aggregates a user's saved pairings. TopCuisine is the
// most frequent cuisine, ties broken alphabetically; empty when the user
// has no pairings.
func (s *Store) GetPairingStats(ctx context.Context, userID string) (*domain.PairingStats, error) {
	var stats domain.PairingStats

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT meal_name), COUNT(DISTINCT playlist_id)
		FROM pairings WHERE user_id = ?`, userID).
		Scan(&stats.TotalPairings, &stats.UniqueMeals, &stats.UniquePlaylists)
	if err != nil {
		return nil, err
	}

	if stats.TotalPairings == 0 {
		return &stats, nil
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT cuisine FROM pairings
		WHERE user_id = ?
		GROUP BY cuisine
		ORDER BY COUNT(*) DESC, cuisine ASC
		LIMIT 1`, userID).Scan(&stats.TopCuisine)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return &stats, nil
}
