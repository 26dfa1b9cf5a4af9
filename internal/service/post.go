package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emotefeed/emote-server/internal/domain"
	domainerrors "github.com/emotefeed/emote-server/internal/errors"
	"github.com/emotefeed/emote-server/internal/id"
	"github.com/emotefeed/emote-server/internal/ratelimit"
	"github.com/emotefeed/emote-server/internal/store"
)

// FeedLimit is the number of posts returned by feed queries.
const FeedLimit = 100

// UserDirectory resolves user IDs to public profiles.
// Satisfied by ProfileService; abstracted so the feed assembly does not
// care where identities live.
type UserDirectory interface {
	ResolveUsers(ctx context.Context, ids []string) (map[string]domain.UserProfile, error)
}

// PostService handles post creation and feed assembly.
type PostService struct {
	store     store.Store
	directory UserDirectory
	karma     *KarmaService
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(
	store store.Store,
	directory UserDirectory,
	karma *KarmaService,
	limiter *ratelimit.KeyedRateLimiter,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		store:     store,
		directory: directory,
		karma:     karma,
		limiter:   limiter,
		logger:    logger,
	}
}

// CreatePostRequest contains the content of a new post.
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=255,emoji"`
}

// PostView is a post decorated with its author's profile and karma,
// ready for rendering.
type PostView struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
	Author    domain.UserProfile `json:"author"`
	Karma     domain.KarmaView   `json:"karma"`
}

// CreatePost validates and stores a new post by the given author.
// Authors are limited in how many posts they may create per minute.
func (s *PostService) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*PostView, error) {
	// Validate request
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if !s.limiter.Allow(authorID) {
		return nil, domainerrors.RateLimited("too many posts, slow down")
	}

	postID, err := id.Generate("post")
	if err != nil {
		return nil, fmt.Errorf("generate post ID: %w", err)
	}

	post := &domain.Post{
		AuthorID: authorID,
		Content:  req.Content,
	}
	post.ID = postID
	post.InitTimestamps()

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Post created",
			"post_id", postID,
			"author_id", authorID,
		)
	}

	views, err := s.assemble(ctx, []*domain.Post{post}, authorID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetFeed returns the latest posts across all users, newest first.
// viewerID may be empty for anonymous viewers.
func (s *PostService) GetFeed(ctx context.Context, viewerID string) ([]PostView, error) {
	posts, err := s.store.ListRecentPosts(ctx, FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	return s.assemble(ctx, posts, viewerID)
}

// GetPostsByAuthor returns the latest posts by one author, newest first.
func (s *PostService) GetPostsByAuthor(ctx context.Context, authorID, viewerID string) ([]PostView, error) {
	if _, err := s.store.GetUser(ctx, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	posts, err := s.store.ListPostsByAuthor(ctx, authorID, FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return s.assemble(ctx, posts, viewerID)
}

// GetPost returns a single post.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID string) (*PostView, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	views, err := s.assemble(ctx, []*domain.Post{post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// assemble decorates posts with author profiles and karma, preserving order.
// If any author cannot be resolved the whole batch fails; a feed with
// anonymous holes would be worse than an error.
func (s *PostService) assemble(ctx context.Context, posts []*domain.Post, viewerID string) ([]PostView, error) {
	if len(posts) == 0 {
		return []PostView{}, nil
	}

	// Collect unique author IDs.
	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	profiles, err := s.directory.ResolveUsers(ctx, authorIDs)
	if err != nil {
		return nil, domainerrors.Upstream("identity lookup failed").WithCause(err)
	}

	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	karma, err := s.karma.GetKarma(ctx, postIDs, viewerID)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		author, ok := profiles[p.AuthorID]
		if !ok {
			return nil, domainerrors.Internalf("author %s missing from identity lookup", p.AuthorID)
		}
		views[i] = PostView{
			ID:        p.ID,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			Author:    author,
			Karma:     karma[i],
		}
	}

	return views, nil
}
