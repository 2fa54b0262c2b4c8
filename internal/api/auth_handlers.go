package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnextapp/readnext-server/internal/domain"
	domainerrors "github.com/readnextapp/readnext-server/internal/errors"
	"github.com/readnextapp/readnext-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/signup",
		Summary:       "Create account",
		Description:   "Creates a new user account with an empty reading history.",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns an access token.",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)
}

// === DTOs ===

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50" doc:"Account username"`
	Password string `json:"password" validate:"required,min=8,max=72" doc:"Account password"`
}

// SignupInput wraps the signup request with headers for Huma.
type SignupInput struct {
	Body          SignupRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// SignupResponse contains the result of account creation.
type SignupResponse struct {
	User    UserResponse `json:"user" doc:"Created user"`
	Message string       `json:"message" doc:"Status message"`
}

// SignupOutput wraps the signup response for Huma.
type SignupOutput struct {
	Body SignupResponse
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required" doc:"Account username"`
	Password string `json:"password" validate:"required" doc:"Account password"`
}

// LoginInput wraps the login request with headers for Huma.
type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// UserResponse contains user information in API responses.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	Username    string    `json:"username" doc:"Username"`
	BookCount   int       `json:"book_count" doc:"Number of books in the reading history"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update timestamp"`
	LastLoginAt time.Time `json:"last_login_at" doc:"Last login timestamp"`
}

// AuthResponse contains the access token and user info.
type AuthResponse struct {
	Token     string       `json:"token" doc:"PASETO access token"`
	TokenType string       `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresAt time.Time    `json:"expires_at" doc:"Token expiry"`
	User      UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// === Handlers ===

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*SignupOutput, error) {
	if !s.authRateLimiter.Allow(extractIP(input.XForwardedFor, input.XRealIP)) {
		return nil, huma.Error429TooManyRequests("Too many signup attempts, try again later")
	}

	user, err := s.services.Auth.Signup(ctx, service.SignupRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		// Duplicate usernames report as a plain bad request so the
		// signup form can show the message inline.
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) && domainErr.Code == domainerrors.CodeAlreadyExists {
			return nil, &APIError{
				status:  http.StatusBadRequest,
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
			}
		}
		return nil, err
	}

	return &SignupOutput{
		Body: SignupResponse{
			User:    mapUserResponse(user),
			Message: "Account created successfully",
		},
	}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	if !s.authRateLimiter.Allow(extractIP(input.XForwardedFor, input.XRealIP)) {
		return nil, huma.Error429TooManyRequests("Too many login attempts, try again later")
	}

	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		Body: AuthResponse{
			Token:     resp.Token,
			TokenType: "Bearer",
			ExpiresAt: resp.ExpiresAt,
			User:      mapUserResponse(resp.User),
		},
	}, nil
}

// === Helpers ===

func mapUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		BookCount:   len(user.Books),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

func extractIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		first, _, _ := strings.Cut(xForwardedFor, ",")
		return strings.TrimSpace(first)
	}
	return xRealIP
}
