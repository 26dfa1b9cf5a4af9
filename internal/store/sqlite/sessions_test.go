package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emotefeed/emote-server/internal/domain"
	"github.com/emotefeed/emote-server/internal/store"
)

func makeTestSession(t *testing.T, s *Store, id, userID, tokenHash string, expiresAt time.Time) *domain.Session {
	t.Helper()
	now := time.Now()
	sess := &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		LastSeenAt:       now,
		ClientName:       "Emote Web",
		Platform:         "Web",
	}
	if err := s.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("create session %s: %v", id, err)
	}
	return sess
}

func TestCreateSession_And_Get(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	sess := makeTestSession(t, s, "sess-1", u.ID, "hash-1", time.Now().Add(time.Hour))

	got, err := s.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.UserID != u.ID {
		t.Errorf("user_id = %s, want %s", got.UserID, u.ID)
	}
	if got.ClientName != "Emote Web" {
		t.Errorf("client_name = %s, want Emote Web", got.ClientName)
	}
}

func TestGetSessionByRefreshToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	sess := makeTestSession(t, s, "sess-1", u.ID, "hash-1", time.Now().Add(time.Hour))

	got, err := s.GetSessionByRefreshToken(ctx, "hash-1")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("id = %s, want %s", got.ID, sess.ID)
	}

	if _, err := s.GetSessionByRefreshToken(ctx, "unknown"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSession_Rotation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	sess := makeTestSession(t, s, "sess-1", u.ID, "hash-1", time.Now().Add(time.Hour))

	sess.RefreshTokenHash = "hash-2"
	sess.LastSeenAt = time.Now()
	if err := s.UpdateSession(ctx, sess); err != nil {
		t.Fatalf("update session: %v", err)
	}

	if _, err := s.GetSessionByRefreshToken(ctx, "hash-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("old token hash should be gone, got %v", err)
	}
	got, err := s.GetSessionByRefreshToken(ctx, "hash-2")
	if err != nil {
		t.Fatalf("get by new token: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("id = %s, want %s", got.ID, sess.ID)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	sess := makeTestSession(t, s, "sess-1", u.ID, "hash-1", time.Now().Add(time.Hour))

	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if err := s.DeleteSession(ctx, sess.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListUserSessions_And_DeleteAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	other := makeTestUser(t, s, "user-2")
	makeTestSession(t, s, "sess-1", u.ID, "hash-1", time.Now().Add(time.Hour))
	makeTestSession(t, s, "sess-2", u.ID, "hash-2", time.Now().Add(time.Hour))
	makeTestSession(t, s, "sess-3", other.ID, "hash-3", time.Now().Add(time.Hour))

	sessions, err := s.ListUserSessions(ctx, u.ID)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}

	if err := s.DeleteAllUserSessions(ctx, u.ID); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	sessions, err = s.ListUserSessions(ctx, u.ID)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected 0 sessions, got %d", len(sessions))
	}

	// Other user's session untouched.
	if _, err := s.GetSession(ctx, "sess-3"); err != nil {
		t.Errorf("other user's session should remain: %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	makeTestSession(t, s, "sess-live", u.ID, "hash-1", time.Now().Add(time.Hour))
	makeTestSession(t, s, "sess-dead", u.ID, "hash-2", time.Now().Add(-time.Hour))

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	if _, err := s.GetSession(ctx, "sess-live"); err != nil {
		t.Errorf("live session should remain: %v", err)
	}
	if _, err := s.GetSession(ctx, "sess-dead"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired session, got %v", err)
	}
}
