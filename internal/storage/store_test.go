package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/plume-player/plume/internal/core"
	plumeerr "github.com/plume-player/plume/internal/errors"
)

func openTestStore(t *testing.T, retention int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "plume.db"), retention)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func track(id, title string) core.Track {
	return core.Track{ID: id, Title: title, Artists: []string{"Artist"}}
}

func TestAppendHistoryOrder(t *testing.T) {
	s := openTestStore(t, 50)

	base := time.Now()
	for i, id := range []string{"one", "two", "three"} {
		if err := s.appendHistoryAt(track(id, id), base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("appendHistoryAt() error = %v", err)
		}
	}

	entries, err := s.History()
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("History() has %d entries, want 3", len(entries))
	}
	if entries[0].Track.ID != "three" {
		t.Errorf("most recent entry = %q, want %q", entries[0].Track.ID, "three")
	}
	if entries[2].Track.ID != "one" {
		t.Errorf("oldest entry = %q, want %q", entries[2].Track.ID, "one")
	}
}

func TestAppendHistoryDedup(t *testing.T) {
	s := openTestStore(t, 50)

	base := time.Now()
	s.appendHistoryAt(track("a", "A"), base)
	s.appendHistoryAt(track("b", "B"), base.Add(time.Second))
	s.appendHistoryAt(track("a", "A"), base.Add(2*time.Second))

	entries, err := s.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("History() has %d entries after replay, want 2", len(entries))
	}
	if entries[0].Track.ID != "a" {
		t.Errorf("replayed track should be first, got %q", entries[0].Track.ID)
	}
}

func TestHistoryRetention(t *testing.T) {
	s := openTestStore(t, 3)

	base := time.Now()
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		if err := s.appendHistoryAt(track(id, id), base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("History() has %d entries, want retention bound 3", len(entries))
	}
	// Oldest two (a, b) evicted first.
	if entries[len(entries)-1].Track.ID != "c" {
		t.Errorf("oldest surviving entry = %q, want %q", entries[len(entries)-1].Track.ID, "c")
	}
}

func TestDeleteHistoryEntry(t *testing.T) {
	s := openTestStore(t, 50)

	base := time.Now()
	s.appendHistoryAt(track("a", "A"), base)
	s.appendHistoryAt(track("b", "B"), base.Add(time.Second))

	if err := s.DeleteHistoryEntry("a"); err != nil {
		t.Fatalf("DeleteHistoryEntry() error = %v", err)
	}
	entries, _ := s.History()
	if len(entries) != 1 || entries[0].Track.ID != "b" {
		t.Errorf("after delete, history = %v, want only track b", entries)
	}
}

func TestClearHistory(t *testing.T) {
	s := openTestStore(t, 50)
	s.AppendHistory(track("a", "A"))

	if err := s.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	entries, err := s.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("History() has %d entries after clear, want 0", len(entries))
	}
}

func TestCreatePlaylist(t *testing.T) {
	s := openTestStore(t, 50)

	if err := s.CreatePlaylist("road trip"); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	names, err := s.Playlists()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "road trip" {
		t.Errorf("Playlists() = %v, want [road trip]", names)
	}
}

func TestCreatePlaylistEmptyName(t *testing.T) {
	s := openTestStore(t, 50)
	if err := s.CreatePlaylist(""); !errors.Is(err, plumeerr.ErrEmptyPlaylistName) {
		t.Errorf("CreatePlaylist(\"\") error = %v, want ErrEmptyPlaylistName", err)
	}
}

func TestCreatePlaylistDuplicate(t *testing.T) {
	s := openTestStore(t, 50)
	s.CreatePlaylist("mix")
	s.AddTrack("mix", track("a", "A"))

	if err := s.CreatePlaylist("mix"); !errors.Is(err, plumeerr.ErrDuplicatePlaylist) {
		t.Fatalf("duplicate CreatePlaylist() error = %v, want ErrDuplicatePlaylist", err)
	}

	// The existing playlist is untouched.
	tracks, err := s.Playlist("mix")
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].ID != "a" {
		t.Errorf("playlist after failed create = %v, want original single track", tracks)
	}
}

func TestAddTrackOrderAndMoveToEnd(t *testing.T) {
	s := openTestStore(t, 50)
	s.CreatePlaylist("mix")
	s.AddTrack("mix", track("a", "A"))
	s.AddTrack("mix", track("b", "B"))
	s.AddTrack("mix", track("a", "A"))

	tracks, err := s.Playlist("mix")
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 2 {
		t.Fatalf("playlist has %d tracks, want 2", len(tracks))
	}
	if tracks[0].ID != "b" || tracks[1].ID != "a" {
		t.Errorf("playlist order = [%s %s], want re-added track moved to end", tracks[0].ID, tracks[1].ID)
	}
}

func TestAddTrackMissingPlaylist(t *testing.T) {
	s := openTestStore(t, 50)
	if err := s.AddTrack("nope", track("a", "A")); !errors.Is(err, plumeerr.ErrPlaylistNotFound) {
		t.Errorf("AddTrack() error = %v, want ErrPlaylistNotFound", err)
	}
}

func TestRemoveTrack(t *testing.T) {
	s := openTestStore(t, 50)
	s.CreatePlaylist("mix")
	s.AddTrack("mix", track("a", "A"))
	s.AddTrack("mix", track("b", "B"))

	if err := s.RemoveTrack("mix", "a"); err != nil {
		t.Fatalf("RemoveTrack() error = %v", err)
	}
	tracks, _ := s.Playlist("mix")
	if len(tracks) != 1 || tracks[0].ID != "b" {
		t.Errorf("playlist after remove = %v, want only track b", tracks)
	}
}

func TestDeletePlaylist(t *testing.T) {
	s := openTestStore(t, 50)
	s.CreatePlaylist("mix")

	if err := s.DeletePlaylist("mix"); err != nil {
		t.Fatalf("DeletePlaylist() error = %v", err)
	}
	if _, err := s.Playlist("mix"); !errors.Is(err, plumeerr.ErrPlaylistNotFound) {
		t.Errorf("Playlist() after delete error = %v, want ErrPlaylistNotFound", err)
	}
	if err := s.DeletePlaylist("mix"); !errors.Is(err, plumeerr.ErrPlaylistNotFound) {
		t.Errorf("second DeletePlaylist() error = %v, want ErrPlaylistNotFound", err)
	}
}

func TestPlaylistsSorted(t *testing.T) {
	s := openTestStore(t, 50)
	for _, name := range []string{"zebra", "alpha", "mango"} {
		s.CreatePlaylist(name)
	}

	names, err := s.Playlists()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "mango", "zebra"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Playlists() = %v, want key order %v", names, want)
		}
	}
}
