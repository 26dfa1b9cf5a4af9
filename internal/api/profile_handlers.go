package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/emotefeed/emote-server/internal/domain"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-current-user",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's account",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{username}",
		Summary:     "Get user profile",
		Description: "Returns the public profile for a username",
		Tags:        []string{"Users"},
	}, s.handleGetProfile)
}

// CurrentUserInput carries the Authorization header.
type CurrentUserInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// ProfileInput identifies a profile by username.
type ProfileInput struct {
	Username string `path:"username" maxLength:"30" doc:"Username"`
}

// ProfileOutput wraps the public profile for Huma.
type ProfileOutput struct {
	Body domain.UserProfile
}

func (s *Server) handleGetCurrentUser(ctx context.Context, input *CurrentUserInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Profile.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, input *ProfileInput) (*ProfileOutput, error) {
	profile, err := s.services.Profile.GetProfileByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: *profile}, nil
}
