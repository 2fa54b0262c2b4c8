package domain

import "github.com/readnextapp/readnext-server/internal/normalize"

// Genre is one of the four recommendable book genres.
type Genre string

const (
	// GenreScienceFiction covers speculative and futuristic fiction.
	GenreScienceFiction Genre = "Science Fiction"
	// GenreHistoricalFiction covers fiction set in a historical period.
	GenreHistoricalFiction Genre = "Historical Fiction"
	// GenreMystery covers crime and detective fiction.
	GenreMystery Genre = "Mystery"
	// GenreFantasy covers fantasy fiction.
	GenreFantasy Genre = "Fantasy"
)

// AllGenres lists every recommendable genre in display order.
var AllGenres = []Genre{
	GenreScienceFiction,
	GenreHistoricalFiction,
	GenreMystery,
	GenreFantasy,
}

// String returns the display form of the genre.
func (g Genre) String() string { return string(g) }

// Slug returns the URL-safe form of the genre ("science-fiction").
func (g Genre) Slug() string { return normalize.Slug(string(g)) }

// ParseGenre resolves a genre from its display form or slug,
// case-insensitively. Unknown input returns ("", false).
func ParseGenre(s string) (Genre, bool) {
	slug := normalize.Slug(s)
	if slug == "" {
		return "", false
	}
	for _, g := range AllGenres {
		if g.Slug() == slug {
			return g, true
		}
	}
	return "", false
}
