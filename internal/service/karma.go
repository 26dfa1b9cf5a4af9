package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emotefeed/emote-server/internal/domain"
	domainerrors "github.com/emotefeed/emote-server/internal/errors"
	"github.com/emotefeed/emote-server/internal/store"
)

// KarmaService owns the vote ledger and karma aggregation.
type KarmaService struct {
	store  store.Store
	logger *slog.Logger
}

// NewKarmaService creates a new karma service.
func NewKarmaService(store store.Store, logger *slog.Logger) *KarmaService {
	return &KarmaService{
		store:  store,
		logger: logger,
	}
}

// CastVote records a viewer's vote on a post and returns the post's updated
// karma view. The viewer's prior vote is always re-derived from the ledger;
// a client-supplied claimed state is only compared for observability and is
// never trusted for the transition:
//
//	no prior vote            -> vote created
//	prior vote, same dir     -> vote removed (toggle off)
//	prior vote, opposite dir -> vote flipped
func (s *KarmaService) CastVote(
	ctx context.Context,
	postID, viewerID string,
	isPositive bool,
	claimed *domain.ViewerKarmaState,
) (*domain.KarmaView, error) {
	// Verify the post exists before touching the ledger.
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	// Re-derive the viewer's prior state from the ledger.
	prior := domain.ViewerKarmaState{}
	existing, err := s.store.GetKarmaVote(ctx, postID, viewerID)
	switch {
	case err == nil:
		prior = domain.ViewerKarmaState{AlreadyVoted: true, IsPositive: existing.IsPositive}
	case errors.Is(err, store.ErrNotFound):
		// No prior vote.
	default:
		return nil, fmt.Errorf("get karma vote: %w", err)
	}

	// A stale claim means the client rendered outdated state. The vote still
	// proceeds against the ledger's truth.
	if claimed != nil && *claimed != prior && s.logger != nil {
		s.logger.Debug("Client vote state out of date",
			"post_id", postID,
			"user_id", viewerID,
			"claimed_voted", claimed.AlreadyVoted,
			"claimed_positive", claimed.IsPositive,
			"actual_voted", prior.AlreadyVoted,
			"actual_positive", prior.IsPositive,
		)
	}

	action, next := domain.ResolveVote(prior, isPositive)

	now := time.Now()
	switch action {
	case domain.VoteCreate:
		vote := &domain.KarmaVote{
			PostID:     postID,
			UserID:     viewerID,
			IsPositive: isPositive,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.store.CreateKarmaVote(ctx, vote); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				// Lost a race with a concurrent vote by the same viewer.
				return nil, domainerrors.Integrity("vote already recorded").WithCause(err)
			}
			return nil, fmt.Errorf("create karma vote: %w", err)
		}

	case domain.VoteFlip:
		vote := &domain.KarmaVote{
			PostID:     postID,
			UserID:     viewerID,
			IsPositive: isPositive,
			UpdatedAt:  now,
		}
		if err := s.store.UpdateKarmaVote(ctx, vote); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.Integrity("vote disappeared during update").WithCause(err)
			}
			return nil, fmt.Errorf("update karma vote: %w", err)
		}

	case domain.VoteRemove:
		if err := s.store.DeleteKarmaVote(ctx, postID, viewerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.Integrity("vote disappeared during removal").WithCause(err)
			}
			return nil, fmt.Errorf("delete karma vote: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("Vote cast",
			"post_id", postID,
			"user_id", viewerID,
			"action", action.String(),
			"is_positive", isPositive,
		)
	}

	total, err := s.totalKarma(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &domain.KarmaView{
		PostID:     postID,
		TotalKarma: total,
		Viewer:     next,
	}, nil
}

// GetKarma aggregates karma for the given posts, preserving input order.
// A post ID appearing more than once yields identical views at every
// occurrence. viewerID may be empty for anonymous viewers; their vote state
// is always the zero value.
func (s *KarmaService) GetKarma(ctx context.Context, postIDs []string, viewerID string) ([]domain.KarmaView, error) {
	views := make([]domain.KarmaView, len(postIDs))
	index := make(map[string][]int, len(postIDs))
	for i, postID := range postIDs {
		views[i] = domain.KarmaView{PostID: postID}
		index[postID] = append(index[postID], i)
	}

	votes, err := s.store.ListKarmaVotes(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("list karma votes: %w", err)
	}

	for _, vote := range votes {
		for _, i := range index[vote.PostID] {
			views[i].TotalKarma += vote.Value()
			if viewerID != "" && vote.UserID == viewerID {
				views[i].Viewer = domain.ViewerKarmaState{AlreadyVoted: true, IsPositive: vote.IsPositive}
			}
		}
	}

	return views, nil
}

// totalKarma sums the votes on a single post.
func (s *KarmaService) totalKarma(ctx context.Context, postID string) (int, error) {
	votes, err := s.store.ListKarmaVotes(ctx, []string{postID})
	if err != nil {
		return 0, fmt.Errorf("list karma votes: %w", err)
	}

	total := 0
	for _, vote := range votes {
		total += vote.Value()
	}
	return total, nil
}
