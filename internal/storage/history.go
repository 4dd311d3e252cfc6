package storage

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/plume-player/plume/internal/core"
)

// historyRecord is the stored form of a history entry. The bucket key is the
// zero-padded unix-nano timestamp, so a cursor walk yields chronological
// order and the oldest entry is always first.
type historyRecord struct {
	Track    core.Track `json:"track"`
	PlayedAt int64      `json:"played_at"`
}

func historyKey(ts int64) []byte {
	return fmt.Appendf(nil, "%020d", ts)
}

// AppendHistory records a play of track at the current time. Replaying a
// track moves its entry to the front instead of duplicating it; entries
// beyond the retention bound are evicted oldest-first.
func (s *Store) AppendHistory(track core.Track) error {
	return s.appendHistoryAt(track, time.Now())
}

func (s *Store) appendHistoryAt(track core.Track, playedAt time.Time) error {
	rec := historyRecord{Track: track, PlayedAt: playedAt.UnixNano()}
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding history entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(historyBucket)

		// Dedup by track ID: drop any existing entry for this track.
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var existing historyRecord
			if err := json.Unmarshal(v, &existing); err != nil {
				continue
			}
			if existing.Track.ID == track.ID {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}

		if err := b.Put(historyKey(rec.PlayedAt), value); err != nil {
			return err
		}

		// Evict oldest entries past the retention bound. Keys are counted
		// with a cursor walk: bucket stats are stale inside an open write
		// transaction.
		n := 0
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			n++
		}
		for ; n > s.retention; n-- {
			k, _ := b.Cursor().First()
			if k == nil {
				break
			}
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// History returns recorded plays, most recent first.
func (s *Store) History() ([]core.HistoryEntry, error) {
	var entries []core.HistoryEntry

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(historyBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec historyRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				continue
			}
			entries = append(entries, core.HistoryEntry{
				Track:    rec.Track,
				PlayedAt: time.Unix(0, rec.PlayedAt),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return entries, nil
}

// DeleteHistoryEntry removes the history entry for the given track ID.
func (s *Store) DeleteHistoryEntry(trackID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(historyBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var rec historyRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				continue
			}
			if rec.Track.ID == trackID {
				return c.Delete()
			}
		}
		return nil
	})
}

// ClearHistory removes all history entries.
func (s *Store) ClearHistory() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(historyBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(historyBucket)
		return err
	})
}
