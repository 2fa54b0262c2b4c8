package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readnextapp/readnext-server/internal/domain"
	"github.com/readnextapp/readnext-server/internal/id"
	"github.com/readnextapp/readnext-server/internal/recommend"
	"github.com/readnextapp/readnext-server/internal/store"
)

func setupRecommendTest(t *testing.T, books []domain.Book) *RecommendationService {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	user := &domain.User{
		ID:       id.MustGenerate("user"),
		Username: "reader1",
		Books:    books,
	}
	user.InitTimestamps()
	require.NoError(t, s.Users.Create(context.Background(), user.ID, user))

	return NewRecommendationService(s, nil)
}

func TestRecommend_AuthorFilterAndReadExclusion(t *testing.T) {
	svc := setupRecommendTest(t, []domain.Book{
		{ID: 1, Name: "Fahrenheit 451", Author: "Ray Bradbury", Genre: "Science Fiction"},
	})

	result, err := svc.Recommend(context.Background(), "reader1", "Science Fiction", "Ray Bradbury")
	require.NoError(t, err)

	// Fahrenheit 451 is read, so only other Bradbury titles remain.
	require.NotEmpty(t, result.Recommendations)
	for _, c := range result.Recommendations {
		assert.Equal(t, "Ray Bradbury", c.Author)
		assert.NotEqual(t, "Fahrenheit 451", c.Name)
	}

	// The user has read in the genre, so suggestions are present and
	// exclude the read title too.
	require.NotEmpty(t, result.Suggestions)
	for _, c := range result.Suggestions {
		assert.NotEqual(t, "Fahrenheit 451", c.Name)
	}
	assert.LessOrEqual(t, len(result.Suggestions), recommend.MaxResults)
}

func TestRecommend_NoGenreHistoryMeansNoSuggestions(t *testing.T) {
	svc := setupRecommendTest(t, []domain.Book{
		{ID: 1, Name: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy"},
	})

	result, err := svc.Recommend(context.Background(), "reader1", "Mystery", "")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Recommendations)
	assert.Empty(t, result.Suggestions)
}

func TestRecommend_EmptyAuthorMatchesAll(t *testing.T) {
	svc := setupRecommendTest(t, nil)

	result, err := svc.Recommend(context.Background(), "reader1", "Fantasy", "")
	require.NoError(t, err)

	assert.Len(t, result.Recommendations, recommend.MaxResults)
}

func TestRecommend_UnknownGenre(t *testing.T) {
	svc := setupRecommendTest(t, nil)

	result, err := svc.Recommend(context.Background(), "reader1", "Horror", "")
	require.NoError(t, err)

	assert.Empty(t, result.Recommendations)
	assert.Empty(t, result.Suggestions)
}

func TestRecommend_UnknownUserDegradesToEmpty(t *testing.T) {
	svc := setupRecommendTest(t, nil)

	result, err := svc.Recommend(context.Background(), "nobody", "Fantasy", "")
	require.NoError(t, err)

	assert.Empty(t, result.Recommendations)
	assert.Empty(t, result.Suggestions)
}

func TestRecommend_AuthorFilterNoMatches(t *testing.T) {
	svc := setupRecommendTest(t, nil)

	result, err := svc.Recommend(context.Background(), "reader1", "Fantasy", "Bradbury")
	require.NoError(t, err)

	assert.Empty(t, result.Recommendations)
}
