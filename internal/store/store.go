// Package store defines the persistence interface for the Emote server.
package store

import (
	"context"

	"github.com/emotefeed/emote-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Auth Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	ListUserSessions(ctx context.Context, userID string) ([]*domain.Session, error)
	DeleteAllUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Posts
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListRecentPosts(ctx context.Context, limit int) ([]*domain.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Post, error)

	// Karma votes
	CreateKarmaVote(ctx context.Context, vote *domain.KarmaVote) error
	GetKarmaVote(ctx context.Context, postID, userID string) (*domain.KarmaVote, error)
	UpdateKarmaVote(ctx context.Context, vote *domain.KarmaVote) error
	DeleteKarmaVote(ctx context.Context, postID, userID string) error
	ListKarmaVotes(ctx context.Context, postIDs []string) ([]*domain.KarmaVote, error)
}
