package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emotefeed/emote-server/internal/domain"
	"github.com/emotefeed/emote-server/internal/store"
)

func makeTestVote(t *testing.T, s *Store, postID, userID string, isPositive bool) *domain.KarmaVote {
	t.Helper()
	now := time.Now()
	v := &domain.KarmaVote{
		PostID:     postID,
		UserID:     userID,
		IsPositive: isPositive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.CreateKarmaVote(context.Background(), v); err != nil {
		t.Fatalf("create vote (%s, %s): %v", postID, userID, err)
	}
	return v
}

func TestCreateKarmaVote_And_Get(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	p := makeTestPost(t, s, "post-1", u.ID)
	makeTestVote(t, s, p.ID, u.ID, true)

	got, err := s.GetKarmaVote(ctx, p.ID, u.ID)
	if err != nil {
		t.Fatalf("get vote: %v", err)
	}
	if !got.IsPositive {
		t.Errorf("expected positive vote")
	}
}

func TestCreateKarmaVote_DuplicatePair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	p := makeTestPost(t, s, "post-1", u.ID)
	v := makeTestVote(t, s, p.ID, u.ID, true)

	// Second insert for the same (post, user) pair must be rejected.
	err := s.CreateKarmaVote(ctx, v)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetKarmaVote_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetKarmaVote(context.Background(), "post-x", "user-x")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateKarmaVote_Flip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	p := makeTestPost(t, s, "post-1", u.ID)
	v := makeTestVote(t, s, p.ID, u.ID, true)

	v.IsPositive = false
	v.UpdatedAt = time.Now()
	if err := s.UpdateKarmaVote(ctx, v); err != nil {
		t.Fatalf("update vote: %v", err)
	}

	got, err := s.GetKarmaVote(ctx, p.ID, u.ID)
	if err != nil {
		t.Fatalf("get vote: %v", err)
	}
	if got.IsPositive {
		t.Errorf("expected vote flipped to negative")
	}
}

func TestUpdateKarmaVote_NotFound(t *testing.T) {
	s := newTestStore(t)

	v := &domain.KarmaVote{PostID: "post-x", UserID: "user-x", UpdatedAt: time.Now()}
	err := s.UpdateKarmaVote(context.Background(), v)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteKarmaVote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "user-1")
	p := makeTestPost(t, s, "post-1", u.ID)
	makeTestVote(t, s, p.ID, u.ID, true)

	if err := s.DeleteKarmaVote(ctx, p.ID, u.ID); err != nil {
		t.Fatalf("delete vote: %v", err)
	}

	if _, err := s.GetKarmaVote(ctx, p.ID, u.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again reports not found.
	if err := s.DeleteKarmaVote(ctx, p.ID, u.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListKarmaVotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := makeTestUser(t, s, "user-a")
	b := makeTestUser(t, s, "user-b")
	p1 := makeTestPost(t, s, "post-1", a.ID)
	p2 := makeTestPost(t, s, "post-2", a.ID)
	p3 := makeTestPost(t, s, "post-3", b.ID)

	makeTestVote(t, s, p1.ID, a.ID, true)
	makeTestVote(t, s, p1.ID, b.ID, false)
	makeTestVote(t, s, p2.ID, b.ID, true)
	makeTestVote(t, s, p3.ID, a.ID, true)

	votes, err := s.ListKarmaVotes(ctx, []string{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	if len(votes) != 3 {
		t.Errorf("expected 3 votes, got %d", len(votes))
	}
	for _, v := range votes {
		if v.PostID == p3.ID {
			t.Errorf("vote for %s should not be included", p3.ID)
		}
	}

	// Empty input short-circuits.
	votes, err = s.ListKarmaVotes(ctx, nil)
	if err != nil {
		t.Fatalf("empty ids: %v", err)
	}
	if votes != nil {
		t.Errorf("expected nil, got %v", votes)
	}
}
