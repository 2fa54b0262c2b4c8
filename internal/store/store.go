// Package store provides persistence on top of Badger with typed
// entity accessors.
package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/readnextapp/readnext-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Users holds registered accounts, keyed by user ID and indexed
	// by username.
	Users *Entity[domain.User]
}

// New opens the database at the given path and initializes the typed
// entity accessors.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}
	store.initUsers()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// initUsers initializes the Users entity on the store.
// Usernames are indexed exactly as entered, so lookups are case-sensitive.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndex("username", func(u *domain.User) []string {
			return []string{u.Username}
		})
}
