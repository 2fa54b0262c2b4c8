package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's account information.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// UserOutput wraps a user response for Huma.
type UserOutput struct {
	Body UserResponse
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}
