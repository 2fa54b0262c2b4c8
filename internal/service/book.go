package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/readnextapp/readnext-server/internal/domain"
	domainerrors "github.com/readnextapp/readnext-server/internal/errors"
	"github.com/readnextapp/readnext-server/internal/store"
)

// BookService manages per-user reading histories.
type BookService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(s *store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  s,
		logger: logger,
	}
}

// AddBookRequest contains a book to record as read.
type AddBookRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Genre    string `json:"genre" validate:"required"`
}

// List returns the user's reading history in insertion order.
func (s *BookService) List(ctx context.Context, username string) ([]domain.Book, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.Books == nil {
		return []domain.Book{}, nil
	}
	return user.Books, nil
}

// Add records a book in the user's history. The same title by the same
// author cannot be added twice; titles are compared in normalized form.
func (s *BookService) Add(ctx context.Context, req AddBookRequest) (*domain.Book, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Author = strings.TrimSpace(req.Author)
	req.Genre = strings.TrimSpace(req.Genre)

	if err := validate.Validate(&req); err != nil {
		return nil, err
	}

	genre, ok := domain.ParseGenre(req.Genre)
	if !ok {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"genre": "must be one of: " + genreList(),
		})
	}

	var added domain.Book
	_, err := s.store.MutateUserByUsername(ctx, req.Username, func(u *domain.User) error {
		if u.HasRead(req.Name, req.Author) {
			return domainerrors.Conflict("You have already read this book")
		}

		added = domain.Book{
			ID:     u.NextBookID(),
			Name:   req.Name,
			Author: req.Author,
			Genre:  genre.String(),
		}
		u.Books = append(u.Books, added)
		u.Touch()
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, fmt.Errorf("add book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book added",
			"username", req.Username,
			"book_id", added.ID,
			"name", added.Name,
		)
	}

	return &added, nil
}

// Remove deletes a book from the user's history by its ID.
func (s *BookService) Remove(ctx context.Context, username string, bookID int) error {
	_, err := s.store.MutateUserByUsername(ctx, username, func(u *domain.User) error {
		if !u.RemoveBook(bookID) {
			return domainerrors.NotFound("Book not found")
		}
		u.Touch()
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return domainErr
		}
		return fmt.Errorf("remove book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book removed", "username", username, "book_id", bookID)
	}

	return nil
}

func genreList() string {
	names := make([]string, len(domain.AllGenres))
	for i, g := range domain.AllGenres {
		names[i] = g.String()
	}
	return strings.Join(names, ", ")
}
