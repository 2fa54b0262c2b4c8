// Package normalize provides canonical forms for book titles and genre names.
//
// Normalized titles are used solely for equality comparison: the stored
// title keeps its original casing and annotations, the normalized form
// decides whether two entries are "the same book".
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches a parenthetical annotation and its surrounding whitespace.
	parenthetical = regexp.MustCompile(`\s*\(.*?\)\s*`)
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
	// Matches runs of whitespace.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Title canonicalizes a book title for equality comparison.
//
// Rules:
//  1. Unicode NFKC normalization
//  2. Lowercase
//  3. Remove parenthetical annotations and their surrounding whitespace
//  4. Collapse interior whitespace
//  5. Trim
//
// Examples:
//
//	"The Hobbit (Illustrated)" → "the hobbit"
//	"  DUNE "                  → "dune"
//
// Title is idempotent: Title(Title(s)) == Title(s).
func Title(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = parenthetical.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Slug converts a string to a URL-safe slug.
// "Science Fiction" -> "science-fiction".
// "Historical Fiction" -> "historical-fiction".
func Slug(s string) string {
	// Normalize unicode (decompose accented characters).
	s = norm.NFKD.String(s)

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
