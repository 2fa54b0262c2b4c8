// Package recommend implements the filtering rules that turn catalog
// entries and a reading history into recommendation lists.
package recommend

import (
	"strings"

	"github.com/readnextapp/readnext-server/internal/catalog"
	"github.com/readnextapp/readnext-server/internal/domain"
	"github.com/readnextapp/readnext-server/internal/normalize"
)

// MaxResults caps each recommendation list.
const MaxResults = 10

// FilterRead removes catalog entries whose normalized title matches a
// book in the reading history. Catalog order is preserved.
func FilterRead(books []catalog.Candidate, history []domain.Book) []catalog.Candidate {
	read := make(map[string]struct{}, len(history))
	for _, b := range history {
		read[normalize.Title(b.Name)] = struct{}{}
	}

	out := make([]catalog.Candidate, 0, len(books))
	for _, b := range books {
		if _, ok := read[normalize.Title(b.Name)]; ok {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ByAuthor keeps entries whose author contains the given substring,
// case-insensitively. An empty substring keeps everything.
func ByAuthor(books []catalog.Candidate, author string) []catalog.Candidate {
	if author == "" {
		return books
	}
	needle := strings.ToLower(author)

	out := make([]catalog.Candidate, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Author), needle) {
			out = append(out, b)
		}
	}
	return out
}

// Cap truncates the list to MaxResults entries.
func Cap(books []catalog.Candidate) []catalog.Candidate {
	if len(books) > MaxResults {
		return books[:MaxResults]
	}
	return books
}
