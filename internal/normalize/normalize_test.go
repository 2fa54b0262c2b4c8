package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "DUNE", "dune"},
		{"trims whitespace", "  The Martian Chronicles ", "the martian chronicles"},
		{"strips parenthetical", "The Hobbit (Illustrated)", "the hobbit"},
		{"strips interior parenthetical", "1984 (Signet Classics) Edition", "1984edition"},
		{"multiple parentheticals", "Dune (Deluxe) (Hardcover)", "dune"},
		{"collapses whitespace", "A   Study  in Scarlet", "a study in scarlet"},
		{"empty", "", ""},
		{"only parenthetical", "(Annotated)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.input))
		})
	}
}

func TestTitle_Idempotent(t *testing.T) {
	inputs := []string{
		"The Hobbit (Illustrated)",
		"  Fahrenheit 451 ",
		"WAR and PEACE",
		"",
		"Crème Brûlée (Second Edition)",
	}

	for _, in := range inputs {
		once := Title(in)
		assert.Equal(t, once, Title(once), "Title must be idempotent for %q", in)
	}
}

func TestTitle_CaseInsensitiveEquality(t *testing.T) {
	assert.Equal(t, Title("the hobbit"), Title("The Hobbit (Illustrated)"))
	assert.Equal(t, Title("FAHRENHEIT 451"), Title("Fahrenheit 451"))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Science Fiction", "science-fiction"},
		{"Historical Fiction", "historical-fiction"},
		{"Mystery", "mystery"},
		{"Fantasy", "fantasy"},
		{"Sci-Fi/Fantasy", "sci-fi-fantasy"},
		{"  Épée  ", "epee"},
		{"--weird--input--", "weird-input"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.input))
		})
	}
}
