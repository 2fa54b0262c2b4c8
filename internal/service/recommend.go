package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/readnextapp/readnext-server/internal/catalog"
	"github.com/readnextapp/readnext-server/internal/domain"
	"github.com/readnextapp/readnext-server/internal/recommend"
	"github.com/readnextapp/readnext-server/internal/store"
)

// RecommendationService produces filtered book recommendations.
type RecommendationService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(s *store.Store, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		store:  s,
		logger: logger,
	}
}

// Recommendations holds the two recommendation lists shown to a user.
type Recommendations struct {
	// Recommendations matches the author filter within the genre.
	Recommendations []catalog.Candidate `json:"recommendations"`
	// Suggestions covers the whole genre, present only once the user
	// has read something in it.
	Suggestions []catalog.Candidate `json:"suggestions"`
}

// Recommend returns up to ten unread books per list for the given
// genre and optional author filter. Unknown users and unknown genres
// degrade to empty lists rather than errors.
func (s *RecommendationService) Recommend(ctx context.Context, username, genreName, authorFilter string) (*Recommendations, error) {
	result := &Recommendations{
		Recommendations: []catalog.Candidate{},
		Suggestions:     []catalog.Candidate{},
	}

	genre, ok := domain.ParseGenre(genreName)
	if !ok {
		return result, nil
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if s.logger != nil {
				s.logger.Debug("recommendations for unknown user", "username", username)
			}
			return result, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	pool := catalog.BooksForGenre(genre)

	primary := recommend.ByAuthor(pool, authorFilter)
	primary = recommend.FilterRead(primary, user.Books)
	result.Recommendations = recommend.Cap(primary)

	if user.HasReadGenre(genre) {
		suggestions := recommend.FilterRead(pool, user.Books)
		result.Suggestions = recommend.Cap(suggestions)
	}

	return result, nil
}
