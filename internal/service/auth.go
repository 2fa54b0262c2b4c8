// Package service implements the application's business logic on top
// of the store and the outbound clients.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/readnextapp/readnext-server/internal/auth"
	"github.com/readnextapp/readnext-server/internal/domain"
	domainerrors "github.com/readnextapp/readnext-server/internal/errors"
	"github.com/readnextapp/readnext-server/internal/id"
	"github.com/readnextapp/readnext-server/internal/store"
	"github.com/readnextapp/readnext-server/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = validation.New()

// AuthService handles user registration, login and token verification.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(s *store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        s,
		tokenService: tokenService,
		logger:       logger,
	}
}

// SignupRequest contains new account data.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the access token and user data.
type AuthResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Signup creates a new user account with an empty reading history.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if err := validate.Validate(&req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Books:        []domain.Book{},
	}
	user.InitTimestamps()

	if err := s.store.Users.Create(ctx, userID, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("Username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User registered",
			"user_id", userID,
			"username", user.Username,
		)
	}

	return user, nil
}

// Login verifies credentials and issues an access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(&req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("Incorrect username/password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, domainerrors.InvalidCredentials("Incorrect username/password")
	}

	user, err = s.store.Users.Mutate(ctx, user.ID, func(u *domain.User) error {
		u.LastLoginAt = time.Now()
		u.Touch()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)
	}

	return &AuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenService.AccessTokenDuration()),
	}, nil
}

// VerifyToken validates an access token and loads its user.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	user, err := s.store.Users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}
