package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/emotefeed/emote-server/internal/domain"
)

func (s *Server) registerKarmaRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "cast-vote",
		Method:      http.MethodPost,
		Path:        "/api/v1/posts/{id}/karma",
		Summary:     "Cast vote",
		Description: "Casts, toggles off, or flips the authenticated user's vote on a post",
		Tags:        []string{"Karma"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCastVote)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-post-karma",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{id}/karma",
		Summary:     "Get post karma",
		Description: "Returns the karma for a single post",
		Tags:        []string{"Karma"},
	}, s.handleGetPostKarma)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-karma-batch",
		Method:      http.MethodGet,
		Path:        "/api/v1/karma",
		Summary:     "Get karma for multiple posts",
		Description: "Returns karma for a comma-separated list of post IDs, in request order. Unknown IDs yield zero karma and no viewer state rather than an error.",
		Tags:        []string{"Karma"},
	}, s.handleGetKarmaBatch)
}

// CastVoteRequest is the request body for casting a vote.
type CastVoteRequest struct {
	IsPositive bool                     `json:"is_positive" doc:"Vote direction"`
	Prior      *domain.ViewerKarmaState `json:"prior,omitempty" doc:"Client's view of its standing vote, for drift detection only"`
}

// CastVoteInput wraps the vote request for Huma.
type CastVoteInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" maxLength:"100" doc:"Post ID"`
	Body          CastVoteRequest
}

// KarmaOutput wraps a single karma view for Huma.
type KarmaOutput struct {
	Body domain.KarmaView
}

// PostKarmaInput identifies a post for a karma lookup.
type PostKarmaInput struct {
	Authorization string `header:"Authorization" required:"false" doc:"Optional bearer token; personalizes vote state"`
	ID            string `path:"id" maxLength:"100" doc:"Post ID"`
}

// KarmaBatchInput carries the post IDs for a batch karma lookup.
type KarmaBatchInput struct {
	Authorization string `header:"Authorization" required:"false" doc:"Optional bearer token; personalizes vote state"`
	PostIDs       string `query:"post_ids" required:"true" maxLength:"4096" doc:"Comma-separated post IDs"`
}

// KarmaBatchResponse is the batch karma lookup response.
type KarmaBatchResponse struct {
	Karma []domain.KarmaView `json:"karma" doc:"Karma views in request order"`
}

// KarmaBatchOutput wraps the batch response for Huma.
type KarmaBatchOutput struct {
	Body KarmaBatchResponse
}

func (s *Server) handleCastVote(ctx context.Context, input *CastVoteInput) (*KarmaOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Karma.CastVote(ctx, input.ID, userID, input.Body.IsPositive, input.Body.Prior)
	if err != nil {
		return nil, err
	}

	return &KarmaOutput{Body: *view}, nil
}

func (s *Server) handleGetPostKarma(ctx context.Context, input *PostKarmaInput) (*KarmaOutput, error) {
	viewerID := s.authenticateOptional(ctx, input.Authorization)

	// Existence check lives in the post service; a karma view of an unknown
	// post should 404 rather than report zero.
	if _, err := s.services.Post.GetPost(ctx, input.ID, viewerID); err != nil {
		return nil, err
	}

	views, err := s.services.Karma.GetKarma(ctx, []string{input.ID}, viewerID)
	if err != nil {
		return nil, err
	}

	return &KarmaOutput{Body: views[0]}, nil
}

func (s *Server) handleGetKarmaBatch(ctx context.Context, input *KarmaBatchInput) (*KarmaBatchOutput, error) {
	viewerID := s.authenticateOptional(ctx, input.Authorization)

	var postIDs []string
	for _, raw := range strings.Split(input.PostIDs, ",") {
		if id := strings.TrimSpace(raw); id != "" {
			postIDs = append(postIDs, id)
		}
	}
	if len(postIDs) == 0 {
		return nil, huma.Error400BadRequest("post_ids must contain at least one post ID")
	}

	views, err := s.services.Karma.GetKarma(ctx, postIDs, viewerID)
	if err != nil {
		return nil, err
	}

	return &KarmaBatchOutput{Body: KarmaBatchResponse{Karma: views}}, nil
}
