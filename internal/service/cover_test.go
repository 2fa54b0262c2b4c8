package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readnextapp/readnext-server/internal/domain"
	domainerrors "github.com/readnextapp/readnext-server/internal/errors"
	"github.com/readnextapp/readnext-server/internal/id"
	"github.com/readnextapp/readnext-server/internal/store"
)

// fakeGenerator returns canned URLs and can fail selected titles.
type fakeGenerator struct {
	mu       sync.Mutex
	failures map[string]error
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	delay    time.Duration
}

func (f *fakeGenerator) GenerateCover(ctx context.Context, name, author string) (string, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	err := f.failures[name]
	f.mu.Unlock()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://images.example.com/%s.png", name), nil
}

func setupCoverTest(t *testing.T, gen CoverGenerator, books []domain.Book) *CoverService {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	user := &domain.User{
		ID:       id.MustGenerate("user"),
		Username: "reader1",
		Books:    books,
	}
	require.NoError(t, s.Users.Create(context.Background(), user.ID, user))

	return NewCoverService(s, gen, 2, time.Second, nil)
}

func TestCoverService_GenerateForUser(t *testing.T) {
	books := []domain.Book{
		{ID: 1, Name: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"},
		{ID: 2, Name: "Foundation", Author: "Isaac Asimov", Genre: "Science Fiction"},
	}
	svc := setupCoverTest(t, &fakeGenerator{}, books)

	result, err := svc.GenerateForUser(context.Background(), "reader1")
	require.NoError(t, err)

	assert.Len(t, result.Images, 2)
	assert.Equal(t, "https://images.example.com/Dune.png", result.Images[1])
	assert.Equal(t, "https://images.example.com/Foundation.png", result.Images[2])
	assert.Empty(t, result.Failures)
}

func TestCoverService_PartialFailure(t *testing.T) {
	books := []domain.Book{
		{ID: 1, Name: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"},
		{ID: 2, Name: "Foundation", Author: "Isaac Asimov", Genre: "Science Fiction"},
		{ID: 3, Name: "Hyperion", Author: "Dan Simmons", Genre: "Science Fiction"},
	}
	gen := &fakeGenerator{failures: map[string]error{
		"Foundation": errors.New("upstream unavailable"),
	}}
	svc := setupCoverTest(t, gen, books)

	result, err := svc.GenerateForUser(context.Background(), "reader1")
	require.NoError(t, err)

	// One failure must not abort the rest of the batch.
	assert.Len(t, result.Images, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 2, result.Failures[0].BookID)
	assert.Contains(t, result.Failures[0].Reason, "upstream unavailable")
}

func TestCoverService_UnknownUser(t *testing.T) {
	svc := setupCoverTest(t, &fakeGenerator{}, nil)

	_, err := svc.GenerateForUser(context.Background(), "nobody")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "User not found", domainErr.Message)
}

func TestCoverService_EmptyHistory(t *testing.T) {
	svc := setupCoverTest(t, &fakeGenerator{}, []domain.Book{})

	result, err := svc.GenerateForUser(context.Background(), "reader1")
	require.NoError(t, err)

	assert.Empty(t, result.Images)
	assert.Empty(t, result.Failures)
}

func TestCoverService_BoundedConcurrency(t *testing.T) {
	books := make([]domain.Book, 6)
	for i := range books {
		books[i] = domain.Book{ID: i + 1, Name: fmt.Sprintf("Book %d", i+1), Author: "A", Genre: "Fantasy"}
	}
	gen := &fakeGenerator{delay: 20 * time.Millisecond}
	svc := setupCoverTest(t, gen, books)

	result, err := svc.GenerateForUser(context.Background(), "reader1")
	require.NoError(t, err)

	assert.Len(t, result.Images, 6)
	assert.LessOrEqual(t, gen.maxSeen.Load(), int32(2), "no more than maxConcurrent requests in flight")
}

func TestCoverService_ItemTimeout(t *testing.T) {
	books := []domain.Book{{ID: 1, Name: "Slow", Author: "A", Genre: "Fantasy"}}

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	user := &domain.User{ID: id.MustGenerate("user"), Username: "reader1", Books: books}
	require.NoError(t, s.Users.Create(context.Background(), user.ID, user))

	gen := &fakeGenerator{delay: 200 * time.Millisecond}
	svc := NewCoverService(s, gen, 2, 10*time.Millisecond, nil)

	result, err := svc.GenerateForUser(context.Background(), "reader1")
	require.NoError(t, err)

	assert.Empty(t, result.Images)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 1, result.Failures[0].BookID)
}
