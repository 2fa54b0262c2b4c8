package store

import (
	"context"

	"github.com/readnextapp/readnext-server/internal/domain"
)

// GetUserByUsername looks up a user by their exact username.
// Returns ErrNotFound if no such user exists.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "username", username)
}

// MutateUserByUsername applies fn to the named user's record inside a
// single transaction and returns the updated user.
func (s *Store) MutateUserByUsername(ctx context.Context, username string, fn func(*domain.User) error) (*domain.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Users.Mutate(ctx, user.ID, fn)
}
