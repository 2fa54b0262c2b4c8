package domain

import "github.com/readnextapp/readnext-server/internal/normalize"

// Book is a single entry in a user's reading history. IDs are assigned
// per-user and are not stable across deletions: deleting the
// highest-numbered book frees its ID for the next addition.
type Book struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// NormalizedName returns the book's title in canonical comparison form.
func (b *Book) NormalizedName() string {
	return normalize.Title(b.Name)
}

// Matches reports whether this book and the given name/author refer to
// the same work, comparing both fields in normalized form.
func (b *Book) Matches(name, author string) bool {
	return normalize.Title(b.Name) == normalize.Title(name) &&
		normalize.Title(b.Author) == normalize.Title(author)
}
