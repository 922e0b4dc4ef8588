package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/store"
)

// makeTestSession creates a domain.Session with sensible defaults for testing.
func makeTestSession(id, userID, tokenHash string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		DeviceName:       "Test Phone",
		ExpiresAt:        now.Add(30 * 24 * time.Hour),
		LastUsedAt:       now,
		CreatedAt:        now,
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	sess := makeTestSession("sess-1", "user-1", "hash-abc")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSessionByTokenHash(ctx, "hash-abc")
	if err != nil {
		t.Fatalf("GetSessionByTokenHash: %v", err)
	}
	if got.ID != "sess-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "sess-1")
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID: got %q, want %q", got.UserID, "user-1")
	}
	if got.DeviceName != "Test Phone" {
		t.Errorf("DeviceName: got %q, want %q", got.DeviceName, "Test Phone")
	}
	if got.IsExpired(time.Now()) {
		t.Error("fresh session should not be expired")
	}
}

func TestGetSessionByTokenHashNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSessionByTokenHash(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSessionDuplicateHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateSession(ctx, makeTestSession("sess-1", "user-1", "hash-abc")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	err := s.CreateSession(ctx, makeTestSession("sess-2", "user-1", "hash-abc"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateSessionRotatesHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	sess := makeTestSession("sess-1", "user-1", "hash-old")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sess.RefreshTokenHash = "hash-new"
	sess.LastUsedAt = time.Now()
	if err := s.UpdateSession(ctx, sess); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	if _, err := s.GetSessionByTokenHash(ctx, "hash-old"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("old hash should no longer resolve, got %v", err)
	}
	got, err := s.GetSessionByTokenHash(ctx, "hash-new")
	if err != nil {
		t.Fatalf("GetSessionByTokenHash: %v", err)
	}
	if got.ID != "sess-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "sess-1")
	}
}

func TestUpdateSessionNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateSession(context.Background(), makeTestSession("missing", "user-1", "hash"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUserSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, makeTestUser("user-2", "bob@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateSession(ctx, makeTestSession("sess-1", "user-1", "hash-1")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.CreateSession(ctx, makeTestSession("sess-2", "user-1", "hash-2")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.CreateSession(ctx, makeTestSession("sess-3", "user-2", "hash-3")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := s.DeleteUserSessions(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteUserSessions: %v", err)
	}

	if _, err := s.GetSessionByTokenHash(ctx, "hash-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected sess-1 deleted, got %v", err)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-2"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected sess-2 deleted, got %v", err)
	}
	// Other user's session survives.
	if _, err := s.GetSessionByTokenHash(ctx, "hash-3"); err != nil {
		t.Errorf("expected sess-3 to survive, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	expired := makeTestSession("sess-1", "user-1", "hash-1")
	expired.ExpiresAt = now.Add(-time.Hour)
	if err := s.CreateSession(ctx, expired); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.CreateSession(ctx, makeTestSession("sess-2", "user-1", "hash-2")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	n, err := s.DeleteExpiredSessions(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted: got %d, want 1", n)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-2"); err != nil {
		t.Errorf("live session should survive, got %v", err)
	}
}
