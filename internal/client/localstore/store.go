// Package localstore is the device-local durable key/value store backing the
// identity token and the offline submission queue.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

const maxConflictRetries = 5

// ErrNotFound is returned when a key has no value.
var ErrNotFound = fmt.Errorf("localstore: %w", domain.ErrNotFound)

// Store wraps a Badger database instance.
type Store struct {
	db  *badger.DB
	log *slog.Logger
}

// Open opens (or creates) the store under dir.
func Open(dir string, log *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	return open(opts, log)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory(log *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, log)
}

func open(opts badger.Options, log *slog.Logger) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	log.Debug("local store opened", slog.String("dir", opts.Dir), slog.Bool("in_memory", opts.InMemory))
	return &Store{db: db, log: log}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get decodes the JSON value stored under key into dest.
func (s *Store) Get(key string, dest any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return nil
}

// Set stores value under key as JSON.
func (s *Store) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Update runs a read-modify-write of the JSON value under key in one badger
// transaction. fn receives the current raw value (nil when absent) and
// returns the new value; a nil result deletes the key. The transaction is
// retried when a concurrent writer commits first.
func (s *Store) Update(key string, fn func(current []byte) ([]byte, error)) error {
	var err error
	for range maxConflictRetries {
		err = s.db.Update(func(txn *badger.Txn) error {
			var current []byte
			item, err := txn.Get([]byte(key))
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
			case err != nil:
				return err
			default:
				if current, err = item.ValueCopy(nil); err != nil {
					return err
				}
			}

			next, err := fn(current)
			if err != nil {
				return err
			}
			if next == nil {
				return txn.Delete([]byte(key))
			}
			return txn.Set([]byte(key), next)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		s.log.Debug("local store write conflict, retrying", slog.String("key", key))
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	return nil
}
