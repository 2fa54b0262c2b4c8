package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/readnextapp/readnext-server/internal/domain"
	domainerrors "github.com/readnextapp/readnext-server/internal/errors"
	"github.com/readnextapp/readnext-server/internal/store"
)

// CoverGenerator produces a cover image URL for a book.
type CoverGenerator interface {
	GenerateCover(ctx context.Context, name, author string) (string, error)
}

// CoverService generates cover images for a user's reading history.
type CoverService struct {
	store     *store.Store
	generator CoverGenerator
	logger    *slog.Logger

	maxConcurrent int
	itemTimeout   time.Duration
}

// NewCoverService creates a new cover service. maxConcurrent bounds
// parallel generation requests, itemTimeout bounds each one.
func NewCoverService(s *store.Store, generator CoverGenerator, maxConcurrent int, itemTimeout time.Duration, logger *slog.Logger) *CoverService {
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	if itemTimeout <= 0 {
		itemTimeout = 30 * time.Second
	}

	return &CoverService{
		store:         s,
		generator:     generator,
		logger:        logger,
		maxConcurrent: maxConcurrent,
		itemTimeout:   itemTimeout,
	}
}

// CoverFailure records a book whose cover could not be generated.
type CoverFailure struct {
	BookID int    `json:"book_id"`
	Reason string `json:"reason"`
}

// CoverResult maps book IDs to generated image URLs, with per-book
// failures reported rather than aborting the batch.
type CoverResult struct {
	Images   map[int]string `json:"images"`
	Failures []CoverFailure `json:"failures"`
}

// GenerateForUser generates covers for every book in the user's
// history. Failed books are skipped and reported; the mapping is not
// persisted anywhere.
func (s *CoverService) GenerateForUser(ctx context.Context, username string) (*CoverResult, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.GenerateBatch(ctx, user.Books), nil
}

// GenerateBatch generates covers for the given books with a bounded
// worker pool.
func (s *CoverService) GenerateBatch(ctx context.Context, books []domain.Book) *CoverResult {
	result := &CoverResult{
		Images:   make(map[int]string, len(books)),
		Failures: []CoverFailure{},
	}
	if len(books) == 0 {
		return result
	}

	jobs := make(chan domain.Book)

	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := min(s.maxConcurrent, len(books))
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for book := range jobs {
				url, err := s.generateOne(ctx, book)

				mu.Lock()
				if err != nil {
					result.Failures = append(result.Failures, CoverFailure{
						BookID: book.ID,
						Reason: err.Error(),
					})
				} else {
					result.Images[book.ID] = url
				}
				mu.Unlock()
			}
		}()
	}

	for _, book := range books {
		jobs <- book
	}
	close(jobs)
	wg.Wait()

	if s.logger != nil {
		s.logger.Info("Cover generation finished",
			"requested", len(books),
			"generated", len(result.Images),
			"failed", len(result.Failures),
		)
	}

	return result
}

func (s *CoverService) generateOne(ctx context.Context, book domain.Book) (string, error) {
	itemCtx, cancel := context.WithTimeout(ctx, s.itemTimeout)
	defer cancel()

	url, err := s.generator.GenerateCover(itemCtx, book.Name, book.Author)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Cover generation failed",
				"book_id", book.ID,
				"name", book.Name,
				"error", err,
			)
		}
		return "", err
	}

	return url, nil
}
