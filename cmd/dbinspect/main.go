package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/readnextapp/readnext-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/ReadNext/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	userCount := 0
	usersWithBooks := 0
	totalBooks := 0
	genreCounts := map[string]int{}

	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("user:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("user:")); it.ValidForPrefix([]byte("user:")); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// Skip index keys
			if strings.HasPrefix(key, "user:idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var user domain.User
				if err := json.Unmarshal(val, &user); err != nil {
					return err
				}

				userCount++
				totalBooks += len(user.Books)

				if len(user.Books) > 0 {
					usersWithBooks++
					// Show first few users with history
					if usersWithBooks <= 3 {
						fmt.Printf("User: %s\n", user.Username)
						fmt.Printf("  ID: %s\n", user.ID)
						fmt.Printf("  Books: %d\n", len(user.Books))
						for i, b := range user.Books {
							if i < 5 {
								fmt.Printf("    [%d] %s by %s (%s)\n", b.ID, b.Name, b.Author, b.Genre)
							}
						}
						if len(user.Books) > 5 {
							fmt.Printf("    ... and %d more books\n", len(user.Books)-5)
						}
						fmt.Println()
					}
				}

				for _, b := range user.Books {
					genreCounts[b.Genre]++
				}

				return nil
			})
			if err != nil {
				log.Printf("Error reading user %s: %v", key, err)
			}
		}
		return nil
	})

	if err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total users: %d\n", userCount)
	fmt.Printf("Users with reading history: %d\n", usersWithBooks)
	fmt.Printf("Total books recorded: %d\n", totalBooks)
	if userCount > 0 {
		fmt.Printf("Average books per user: %.1f\n", float64(totalBooks)/float64(userCount))
	}
	for genre, count := range genreCounts {
		fmt.Printf("  %s: %d\n", genre, count)
	}
}
