package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Entity provides generic CRUD operations for any domain type.
// Values are stored as JSON under prefix+id, with secondary index
// entries under prefix+"idx:"+name+":"+key pointing back at the id.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []Index[T]
}

// Index defines a secondary index on an entity.
type Index[T any] struct {
	name   string
	keyGen func(*T) []string
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{
		store:   s,
		prefix:  prefix,
		indexes: make([]Index[T], 0),
	}
}

// WithIndex adds a secondary index to the entity. Index keys must be
// unique across entities; Create and Update reject conflicts.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:   name,
		keyGen: keyGen,
	})
	return e
}

func (e *Entity[T]) indexKey(name, key string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + key)
}

// Create stores a new entity under the given ID.
// Returns ErrAlreadyExists if the ID or any index key is taken.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	key := []byte(e.prefix + id)

	return e.store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		for _, idx := range e.indexes {
			for _, ik := range idx.keyGen(entity) {
				_, err := txn.Get(e.indexKey(idx.name, ik))
				if err == nil {
					return fmt.Errorf("index %s conflict on key %s: %w", idx.name, ik, ErrAlreadyExists)
				}
				if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("failed to check index key: %w", err)
				}
			}
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		for _, idx := range e.indexes {
			for _, ik := range idx.keyGen(entity) {
				if err := txn.Set(e.indexKey(idx.name, ik), []byte(id)); err != nil {
					return fmt.Errorf("failed to set index key: %w", err)
				}
			}
		}

		return nil
	})
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := e.store.db.View(func(txn *badger.Txn) error {
		return e.read(txn, id, &entity)
	})
	if err != nil {
		return nil, err
	}

	return &entity, nil
}

// read loads and unmarshals an entity inside an open transaction.
func (e *Entity[T]) read(txn *badger.Txn, id string, dest *T) error {
	item, err := txn.Get([]byte(e.prefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}

	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, dest); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}
		return nil
	})
}

// GetByIndex retrieves an entity by secondary index value.
// Returns ErrNotFound if no entity carries that index key.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var id string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.indexKey(indexName, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return e.Get(ctx, id)
}

// Update replaces an existing entity, maintaining its index entries.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		var old T
		if err := e.read(txn, id, &old); err != nil {
			return err
		}

		if err := e.reindex(txn, id, &old, entity); err != nil {
			return err
		}

		if err := txn.Set([]byte(e.prefix+id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}

		return nil
	})
}

// Mutate applies fn to the stored entity and writes the result back,
// all inside a single transaction. Badger detects conflicting
// read-modify-write transactions at commit time, so concurrent
// mutations of the same entity are retried rather than interleaved and
// sequences like assigning the next book ID stay consistent.
// Returns ErrNotFound if the entity does not exist; any error from fn
// aborts the transaction unchanged.
func (e *Entity[T]) Mutate(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var entity T
		err := e.store.db.Update(func(txn *badger.Txn) error {
			if err := e.read(txn, id, &entity); err != nil {
				return err
			}

			old := entity
			if err := fn(&entity); err != nil {
				return err
			}

			data, err := json.Marshal(&entity)
			if err != nil {
				return fmt.Errorf("failed to marshal entity: %w", err)
			}

			if err := e.reindex(txn, id, &old, &entity); err != nil {
				return err
			}

			if err := txn.Set([]byte(e.prefix+id), data); err != nil {
				return fmt.Errorf("failed to set key: %w", err)
			}

			return nil
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return &entity, nil
	}
}

// reindex removes the old entity's index entries and writes the new
// ones, rejecting conflicts with other entities' keys.
func (e *Entity[T]) reindex(txn *badger.Txn, id string, old, updated *T) error {
	for _, idx := range e.indexes {
		for _, ik := range idx.keyGen(old) {
			if err := txn.Delete(e.indexKey(idx.name, ik)); err != nil {
				return fmt.Errorf("failed to delete old index key: %w", err)
			}
		}
	}

	for _, idx := range e.indexes {
		oldKeys := make(map[string]bool)
		for _, ik := range idx.keyGen(old) {
			oldKeys[ik] = true
		}

		for _, ik := range idx.keyGen(updated) {
			if oldKeys[ik] {
				continue
			}
			_, err := txn.Get(e.indexKey(idx.name, ik))
			if err == nil {
				return fmt.Errorf("index %s conflict on key %s: %w", idx.name, ik, ErrAlreadyExists)
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("failed to check index key: %w", err)
			}
		}
	}

	for _, idx := range e.indexes {
		for _, ik := range idx.keyGen(updated) {
			if err := txn.Set(e.indexKey(idx.name, ik), []byte(id)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}

	return nil
}

// Delete removes an entity and its index entries.
// Idempotent, deleting an absent ID is not an error.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		var entity T
		err := e.read(txn, id, &entity)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		for _, idx := range e.indexes {
			for _, ik := range idx.keyGen(&entity) {
				if err := txn.Delete(e.indexKey(idx.name, ik)); err != nil {
					return fmt.Errorf("failed to delete index key: %w", err)
				}
			}
		}

		if err := txn.Delete([]byte(e.prefix + id)); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}

		return nil
	})
}

// List returns an iterator over all entities under the prefix.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				// Skip index keys
				key := string(it.Item().Key())
				if strings.HasPrefix(key[len(e.prefix):], "idx:") {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&entity, nil) {
					return nil // Consumer stopped early
				}
			}

			return nil
		})
	}
}
