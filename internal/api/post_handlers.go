package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/emotefeed/emote-server/internal/service"
)

func (s *Server) registerPostRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "create-post",
		Method:      http.MethodPost,
		Path:        "/api/v1/posts",
		Summary:     "Create post",
		Description: "Creates a new emoji post by the authenticated user",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-feed",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts",
		Summary:     "Get global feed",
		Description: "Returns the latest posts across all users, newest first",
		Tags:        []string{"Posts"},
	}, s.handleGetFeed)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-post",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Get post",
		Description: "Returns a single post with author and karma",
		Tags:        []string{"Posts"},
	}, s.handleGetPost)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-user-posts",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/posts",
		Summary:     "Get user feed",
		Description: "Returns the latest posts by one user, newest first",
		Tags:        []string{"Posts"},
	}, s.handleGetUserPosts)
}

// CreatePostInput wraps the post creation request for Huma.
type CreatePostInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          struct {
		Content string `json:"content" doc:"Post content, emoji only, at most 255 characters"`
	}
}

// PostOutput wraps a single post view for Huma.
type PostOutput struct {
	Body service.PostView
}

// FeedInput carries the optional viewer identity for feed requests.
type FeedInput struct {
	Authorization string `header:"Authorization" required:"false" doc:"Optional bearer token; personalizes vote state"`
}

// FeedResponse is a page of posts.
type FeedResponse struct {
	Posts []service.PostView `json:"posts" doc:"Posts, newest first"`
	Count int                `json:"count" doc:"Number of posts returned"`
}

// FeedOutput wraps the feed response for Huma.
type FeedOutput struct {
	Body FeedResponse
}

// GetPostInput identifies a post by ID.
type GetPostInput struct {
	Authorization string `header:"Authorization" required:"false" doc:"Optional bearer token; personalizes vote state"`
	ID            string `path:"id" maxLength:"100" doc:"Post ID"`
}

// UserPostsInput identifies an author by ID.
type UserPostsInput struct {
	Authorization string `header:"Authorization" required:"false" doc:"Optional bearer token; personalizes vote state"`
	ID            string `path:"id" maxLength:"100" doc:"Author's user ID"`
}

func (s *Server) handleCreatePost(ctx context.Context, input *CreatePostInput) (*PostOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Post.CreatePost(ctx, userID, service.CreatePostRequest{
		Content: input.Body.Content,
	})
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: *view}, nil
}

func (s *Server) handleGetFeed(ctx context.Context, input *FeedInput) (*FeedOutput, error) {
	viewerID := s.authenticateOptional(ctx, input.Authorization)

	posts, err := s.services.Post.GetFeed(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return &FeedOutput{Body: FeedResponse{Posts: posts, Count: len(posts)}}, nil
}

func (s *Server) handleGetPost(ctx context.Context, input *GetPostInput) (*PostOutput, error) {
	viewerID := s.authenticateOptional(ctx, input.Authorization)

	view, err := s.services.Post.GetPost(ctx, input.ID, viewerID)
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: *view}, nil
}

func (s *Server) handleGetUserPosts(ctx context.Context, input *UserPostsInput) (*FeedOutput, error) {
	viewerID := s.authenticateOptional(ctx, input.Authorization)

	posts, err := s.services.Post.GetPostsByAuthor(ctx, input.ID, viewerID)
	if err != nil {
		return nil, err
	}

	return &FeedOutput{Body: FeedResponse{Posts: posts, Count: len(posts)}}, nil
}
