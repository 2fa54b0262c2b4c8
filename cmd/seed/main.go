// Package main provides a tool to seed the database with demo accounts.
//
// This creates test users with reading histories drawn from the
// recommendation catalog, useful for trying the API by hand.
//
// Usage:
//
//	DB_PATH=~/ReadNext/data/db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/readnextapp/readnext-server/internal/auth"
	"github.com/readnextapp/readnext-server/internal/catalog"
	"github.com/readnextapp/readnext-server/internal/domain"
	"github.com/readnextapp/readnext-server/internal/id"
	"github.com/readnextapp/readnext-server/internal/store"
)

// testUsernames are account names for generated demo users.
var testUsernames = []string{
	"alex",
	"jordan",
	"sam",
	"casey",
	"riley",
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/ReadNext/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	passwordHash, err := auth.HashPassword("testpass123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	for _, username := range testUsernames {
		if existing, _ := s.GetUserByUsername(ctx, username); existing != nil {
			fmt.Printf("  User %s already exists, skipping\n", username)
			continue
		}

		user := &domain.User{
			ID:           id.MustGenerate("user"),
			Username:     username,
			PasswordHash: passwordHash,
			Books:        randomHistory(rng),
		}
		user.InitTimestamps()

		if err := s.Users.Create(ctx, user.ID, user); err != nil {
			log.Printf("  Failed to create user %s: %v", username, err)
			continue
		}

		fmt.Printf("  Created user: %s with %d books\n", username, len(user.Books))
		for _, b := range user.Books {
			fmt.Printf("    [%d] %s by %s (%s)\n", b.ID, b.Name, b.Author, b.Genre)
		}
	}

	fmt.Println("\nSeeding complete! Password for all demo users: testpass123")
}

// randomHistory picks a few catalog books across one or two genres.
func randomHistory(rng *rand.Rand) []domain.Book {
	books := []domain.Book{}

	numGenres := 1 + rng.Intn(2)
	genres := make([]domain.Genre, len(domain.AllGenres))
	copy(genres, domain.AllGenres)
	rng.Shuffle(len(genres), func(i, j int) {
		genres[i], genres[j] = genres[j], genres[i]
	})

	for _, genre := range genres[:numGenres] {
		pool := catalog.BooksForGenre(genre)
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		numBooks := min(2+rng.Intn(3), len(pool))
		for _, candidate := range pool[:numBooks] {
			books = append(books, domain.Book{
				ID:     len(books) + 1,
				Name:   candidate.Name,
				Author: candidate.Author,
				Genre:  genre.String(),
			})
		}
	}

	return books
}
