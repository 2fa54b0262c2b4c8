package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/readnextapp/readnext-server/internal/catalog"
	"github.com/readnextapp/readnext-server/internal/domain"
)

func TestFilterRead(t *testing.T) {
	books := catalog.BooksForGenre(domain.GenreScienceFiction)
	history := []domain.Book{
		{ID: 1, Name: "Fahrenheit 451", Author: "Ray Bradbury", Genre: "Science Fiction"},
	}

	filtered := FilterRead(books, history)

	assert.Len(t, filtered, len(books)-1)
	for _, b := range filtered {
		assert.NotEqual(t, "Fahrenheit 451", b.Name)
	}
	// Other Bradbury titles stay in the pool.
	names := make([]string, 0, len(filtered))
	for _, b := range filtered {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "The Martian Chronicles")
}

func TestFilterRead_NormalizedTitles(t *testing.T) {
	books := []catalog.Candidate{
		{Name: "The Hobbit", Author: "J.R.R. Tolkien"},
		{Name: "Dune", Author: "Frank Herbert"},
	}
	history := []domain.Book{
		{ID: 1, Name: "The Hobbit (Illustrated Edition)", Author: "J.R.R. Tolkien"},
	}

	filtered := FilterRead(books, history)

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Dune", filtered[0].Name)
}

func TestFilterRead_EmptyHistory(t *testing.T) {
	books := catalog.BooksForGenre(domain.GenreMystery)
	assert.Equal(t, books, FilterRead(books, nil))
}

func TestFilterRead_PreservesOrder(t *testing.T) {
	books := []catalog.Candidate{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
	}
	history := []domain.Book{{ID: 1, Name: "B"}}

	filtered := FilterRead(books, history)

	assert.Equal(t, []catalog.Candidate{{Name: "A"}, {Name: "C"}, {Name: "D"}}, filtered)
}

func TestByAuthor(t *testing.T) {
	books := []catalog.Candidate{
		{Name: "Fahrenheit 451", Author: "Ray Bradbury"},
		{Name: "Dune", Author: "Frank Herbert"},
		{Name: "The Martian Chronicles", Author: "Ray Bradbury"},
	}

	tests := []struct {
		name     string
		author   string
		expected int
	}{
		{"full name", "Ray Bradbury", 2},
		{"partial match", "brad", 2},
		{"mixed case", "HERBERT", 1},
		{"no match", "Tolkien", 0},
		{"empty keeps all", "", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ByAuthor(books, tt.author), tt.expected)
		})
	}
}

func TestCap(t *testing.T) {
	books := make([]catalog.Candidate, 15)
	assert.Len(t, Cap(books), MaxResults)
	assert.Len(t, Cap(books[:5]), 5)
	assert.Empty(t, Cap(nil))
}
