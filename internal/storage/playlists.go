package storage

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/plume-player/plume/internal/core"
	plumeerr "github.com/plume-player/plume/internal/errors"
)

// Playlists are stored one nested bucket per playlist, keyed by name, so
// listing them comes back in key order. Within a playlist, tracks are keyed
// by a zero-padded insertion counter to preserve user ordering.

func trackKey(pos uint64) []byte {
	return fmt.Appendf(nil, "%010d", pos)
}

// CreatePlaylist creates an empty playlist with the given name.
func (s *Store) CreatePlaylist(name string) error {
	if name == "" {
		return plumeerr.ErrEmptyPlaylistName
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(playlistsBucket)
		if root.Bucket([]byte(name)) != nil {
			return plumeerr.ErrDuplicatePlaylist
		}
		_, err := root.CreateBucket([]byte(name))
		return err
	})
}

// DeletePlaylist removes the named playlist and its tracks.
func (s *Store) DeletePlaylist(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(playlistsBucket)
		if root.Bucket([]byte(name)) == nil {
			return plumeerr.ErrPlaylistNotFound
		}
		return root.DeleteBucket([]byte(name))
	})
}

// AddTrack appends track to the named playlist. Re-adding a track that is
// already present moves it to the end.
func (s *Store) AddTrack(name string, track core.Track) error {
	value, err := json.Marshal(track)
	if err != nil {
		return fmt.Errorf("encoding track: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(playlistsBucket).Bucket([]byte(name))
		if b == nil {
			return plumeerr.ErrPlaylistNotFound
		}

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var existing core.Track
			if err := json.Unmarshal(v, &existing); err != nil {
				continue
			}
			if existing.ID == track.ID {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}

		pos, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(trackKey(pos), value)
	})
}

// RemoveTrack removes the track with the given ID from the named playlist.
func (s *Store) RemoveTrack(name, trackID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(playlistsBucket).Bucket([]byte(name))
		if b == nil {
			return plumeerr.ErrPlaylistNotFound
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var track core.Track
			if err := json.Unmarshal(v, &track); err != nil {
				continue
			}
			if track.ID == trackID {
				return c.Delete()
			}
		}
		return nil
	})
}

// Playlists returns all playlist names in key order.
func (s *Store) Playlists() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(playlistsBucket).ForEachBucket(func(k []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}
	return names, nil
}

// Playlist returns the named playlist's tracks in user order.
func (s *Store) Playlist(name string) ([]core.Track, error) {
	var tracks []core.Track
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(playlistsBucket).Bucket([]byte(name))
		if b == nil {
			return plumeerr.ErrPlaylistNotFound
		}
		return b.ForEach(func(k, v []byte) error {
			var track core.Track
			if err := json.Unmarshal(v, &track); err != nil {
				return nil
			}
			tracks = append(tracks, track)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}
