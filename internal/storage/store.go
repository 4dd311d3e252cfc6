// Package storage is the durable home of play history and user playlists,
// backed by a single-file embedded key-ordered store (bbolt). Every write
// commits before the call returns, so callers may read their own writes
// immediately.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var (
	historyBucket   = []byte("history")
	playlistsBucket = []byte("playlists")
)

// Store wraps the bbolt database.
type Store struct {
	db        *bolt.DB
	retention int
}

// Open opens (creating if needed) the store at path. retention bounds the
// number of history entries kept.
func Open(path string, retention int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(historyBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(playlistsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing buckets: %w", err)
	}

	return &Store{db: db, retention: retention}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
