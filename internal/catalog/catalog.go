// Package catalog holds the static per-genre book lists that
// recommendations are drawn from.
package catalog

import "github.com/readnextapp/readnext-server/internal/domain"

// Candidate is a single recommendable book from the catalog.
type Candidate struct {
	Name      string `json:"name"`
	Author    string `json:"author"`
	ImageURL  string `json:"image,omitempty"`
	URL       string `json:"url,omitempty"`
	AuthorURL string `json:"author_url,omitempty"`
}

// BooksForGenre returns the catalog entries for the given genre in
// catalog order. Unknown genres return an empty slice.
func BooksForGenre(genre domain.Genre) []Candidate {
	books, ok := byGenre[genre]
	if !ok {
		return nil
	}
	out := make([]Candidate, len(books))
	copy(out, books)
	return out
}

var byGenre = map[domain.Genre][]Candidate{
	domain.GenreScienceFiction: {
		{Name: "Fahrenheit 451", Author: "Ray Bradbury"},
		{Name: "The Martian Chronicles", Author: "Ray Bradbury"},
		{Name: "Dune", Author: "Frank Herbert"},
		{Name: "Ender's Game", Author: "Orson Scott Card"},
		{Name: "The Left Hand of Darkness", Author: "Ursula K. Le Guin"},
		{Name: "Foundation", Author: "Isaac Asimov"},
		{Name: "Hyperion", Author: "Dan Simmons"},
		{Name: "Snow Crash", Author: "Neal Stephenson"},
		{Name: "The Martian", Author: "Andy Weir"},
		{Name: "Neuromancer", Author: "William Gibson"},
		{Name: "A Canticle for Leibowitz", Author: "Walter M. Miller Jr."},
		{Name: "The Forever War", Author: "Joe Haldeman"},
	},
	domain.GenreHistoricalFiction: {
		{Name: "All the Light We Cannot See", Author: "Anthony Doerr"},
		{Name: "The Book Thief", Author: "Markus Zusak"},
		{Name: "Wolf Hall", Author: "Hilary Mantel"},
		{Name: "The Nightingale", Author: "Kristin Hannah"},
		{Name: "The Pillars of the Earth", Author: "Ken Follett"},
		{Name: "A Gentleman in Moscow", Author: "Amor Towles"},
		{Name: "Pachinko", Author: "Min Jin Lee"},
		{Name: "The Help", Author: "Kathryn Stockett"},
		{Name: "Memoirs of a Geisha", Author: "Arthur Golden"},
		{Name: "Cold Mountain", Author: "Charles Frazier"},
		{Name: "The Other Boleyn Girl", Author: "Philippa Gregory"},
	},
	domain.GenreMystery: {
		{Name: "The Girl with the Dragon Tattoo", Author: "Stieg Larsson"},
		{Name: "Gone Girl", Author: "Gillian Flynn"},
		{Name: "And Then There Were None", Author: "Agatha Christie"},
		{Name: "The Big Sleep", Author: "Raymond Chandler"},
		{Name: "In the Woods", Author: "Tana French"},
		{Name: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle"},
		{Name: "The Silent Patient", Author: "Alex Michaelides"},
		{Name: "Murder on the Orient Express", Author: "Agatha Christie"},
		{Name: "The Maltese Falcon", Author: "Dashiell Hammett"},
		{Name: "Big Little Lies", Author: "Liane Moriarty"},
		{Name: "The No. 1 Ladies' Detective Agency", Author: "Alexander McCall Smith"},
	},
	domain.GenreFantasy: {
		{Name: "The Name of the Wind", Author: "Patrick Rothfuss"},
		{Name: "The Hobbit", Author: "J.R.R. Tolkien"},
		{Name: "A Game of Thrones", Author: "George R.R. Martin"},
		{Name: "Mistborn: The Final Empire", Author: "Brandon Sanderson"},
		{Name: "The Way of Kings", Author: "Brandon Sanderson"},
		{Name: "American Gods", Author: "Neil Gaiman"},
		{Name: "The Lies of Locke Lamora", Author: "Scott Lynch"},
		{Name: "Assassin's Apprentice", Author: "Robin Hobb"},
		{Name: "The Fifth Season", Author: "N.K. Jemisin"},
		{Name: "Jonathan Strange & Mr Norrell", Author: "Susanna Clarke"},
		{Name: "The Last Unicorn", Author: "Peter S. Beagle"},
	},
}
