package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooks_EmptyInitially(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice")

	resp := ts.api.Get("/api/v1/books?username=alice")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListBooksResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.Empty(t, envelope.Data.Books)
	assert.NotNil(t, envelope.Data.Books)
}

func TestListBooks_UnknownUser(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/books?username=nobody")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "User not found", envelope.Message)
}

func TestAddBook_Success(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice")

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"username": "alice",
		"name":     "Dune",
		"author":   "Frank Herbert",
		"genre":    "Science Fiction",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[BookResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, 1, envelope.Data.ID)
	assert.Equal(t, "Dune", envelope.Data.Name)
	assert.Equal(t, "Frank Herbert", envelope.Data.Author)
	assert.Equal(t, "Science Fiction", envelope.Data.Genre)
}

func TestAddBook_AssignsSequentialIDs(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice")

	ts.addTestBook(t, "alice", "Dune", "Frank Herbert", "Science Fiction")
	ts.addTestBook(t, "alice", "Hyperion", "Dan Simmons", "Science Fiction")

	resp := ts.api.Get("/api/v1/books?username=alice")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Books, 2)
	assert.Equal(t, 1, envelope.Data.Books[0].ID)
	assert.Equal(t, 2, envelope.Data.Books[1].ID)
}

func TestAddBook_DuplicateConflict(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice")
	ts.addTestBook(t, "alice", "Dune", "Frank Herbert", "Science Fiction")

	// Same title in a different case still counts as read.
	resp := ts.api.Post("/api/v1/books", map[string]any{
		"username": "alice",
		"name":     "DUNE",
		"author":   "Frank Herbert",
		"genre":    "Science Fiction",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "You have already read this book", envelope.Message)
}

func TestAddBook_UnknownGenre(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice")

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"username": "alice",
		"name":     "Dune",
		"author":   "Frank Herbert",
		"genre":    "Cooking",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.NotNil(t, envelope.Details)
	assert.Contains(t, envelope.Details, "genre")
}

func TestAddBook_UnknownUser(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"username": "nobody",
		"name":     "Dune",
		"author":   "Frank Herbert",
		"genre":    "Science Fiction",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRemoveBook_Success(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice")
	ts.addTestBook(t, "alice", "Dune", "Frank Herbert", "Science Fiction")

	resp := ts.api.Delete("/api/v1/books", map[string]any{
		"username": "alice",
		"id":       1,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	list := ts.api.Get("/api/v1/books?username=alice")
	var envelope testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Books)
}

func TestRemoveBook_BookNotFound(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice")

	resp := ts.api.Delete("/api/v1/books", map[string]any{
		"username": "alice",
		"id":       42,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "Book not found", envelope.Message)
}

func TestRemoveBook_FreesHighestID(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice")
	ts.addTestBook(t, "alice", "Dune", "Frank Herbert", "Science Fiction")
	ts.addTestBook(t, "alice", "Hyperion", "Dan Simmons", "Science Fiction")

	resp := ts.api.Delete("/api/v1/books", map[string]any{
		"username": "alice",
		"id":       2,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	add := ts.api.Post("/api/v1/books", map[string]any{
		"username": "alice",
		"name":     "Neuromancer",
		"author":   "William Gibson",
		"genre":    "Science Fiction",
	})
	require.Equal(t, http.StatusOK, add.Code)

	var envelope testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(add.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.ID)
}
