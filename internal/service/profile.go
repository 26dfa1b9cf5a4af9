package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/emotefeed/emote-server/internal/domain"
	domainerrors "github.com/emotefeed/emote-server/internal/errors"
	"github.com/emotefeed/emote-server/internal/store"
)

// ProfileService resolves user identities to public profiles.
// It is the server's identity directory; everything that renders an
// author name goes through here.
type ProfileService struct {
	store  store.Store
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store store.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:  store,
		logger: logger,
	}
}

// GetCurrentUser returns the full user record for the given ID.
func (s *ProfileService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetProfileByUsername returns the public profile for a username.
func (s *ProfileService) GetProfileByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user.Profile(), nil
}

// ResolveUsers returns public profiles for the given user IDs, keyed by ID.
// IDs that resolve to no user are absent from the map; callers decide
// whether a missing entry is an error.
func (s *ProfileService) ResolveUsers(ctx context.Context, ids []string) (map[string]domain.UserProfile, error) {
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}

	profiles := make(map[string]domain.UserProfile, len(users))
	for _, u := range users {
		profiles[u.ID] = *u.Profile()
	}
	return profiles, nil
}
