package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plume-player/plume/internal/config"
	"github.com/plume-player/plume/internal/core"
	plumeerr "github.com/plume-player/plume/internal/errors"
	"github.com/plume-player/plume/internal/provider"
	"github.com/plume-player/plume/internal/storage"
)

type fakeProvider struct {
	tracks     []core.Track
	refs       []provider.PlaylistRef
	err        error
	resolveErr map[string]error
	resolved   []string
}

func (f *fakeProvider) Search(_ context.Context, query string) ([]core.Track, error) {
	return f.tracks, f.err
}

func (f *fakeProvider) SearchPlaylists(_ context.Context, query string) ([]provider.PlaylistRef, error) {
	return f.refs, f.err
}

func (f *fakeProvider) Resolve(_ context.Context, trackID string) (string, error) {
	if err := f.resolveErr[trackID]; err != nil {
		return "", err
	}
	f.resolved = append(f.resolved, trackID)
	return "stream://" + trackID, nil
}

func (f *fakeProvider) ExpandPlaylist(_ context.Context, ref provider.PlaylistRef) ([]core.Track, error) {
	return f.tracks, f.err
}

type fakeController struct {
	loads   []string
	toggles int
	volume  int
	paused  bool
}

func (f *fakeController) Load(_ context.Context, locator string) error {
	f.loads = append(f.loads, locator)
	f.paused = false
	return nil
}

func (f *fakeController) Play(context.Context) error  { f.paused = false; return nil }
func (f *fakeController) Pause(context.Context) error { f.paused = true; return nil }

func (f *fakeController) Toggle(context.Context) error {
	f.toggles++
	f.paused = !f.paused
	return nil
}

func (f *fakeController) Seek(context.Context, time.Duration) error { return nil }
func (f *fakeController) AdjustVolume(context.Context, int) error   { return nil }

func (f *fakeController) SetVolume(_ context.Context, volume int) error {
	f.volume = volume
	return nil
}

func (f *fakeController) Status(context.Context) (core.Status, error) {
	return core.Status{Paused: f.paused}, nil
}

func (f *fakeController) Shutdown() error { return nil }

func newTestModel(t *testing.T) (Model, *fakeProvider, *fakeController) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "plume.db"), 50)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	fp := &fakeProvider{resolveErr: map[string]error{}}
	fc := &fakeController{}
	app := &App{Provider: fp, Player: fc, Store: store, Config: config.Default()}
	return NewModel(app), fp, fc
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// step feeds a message into Update and runs any returned command
// synchronously, feeding its result back, until no commands remain.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for msg != nil {
		var cmd tea.Cmd
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
		if cmd == nil {
			return m
		}
		msg = cmd()
		if _, ok := msg.(tickMsg); ok {
			return m
		}
	}
	return m
}

func threeTracks() []core.Track {
	return []core.Track{
		{ID: "t1", Title: "One", Artists: []string{"A"}},
		{ID: "t2", Title: "Two", Artists: []string{"B"}},
		{ID: "t3", Title: "Three", Artists: []string{"C"}},
	}
}

func TestSearchGenerationDiscard(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.mode = ModeSearch

	// Two searches issued in quick succession: generation advances twice.
	m.searchInput.SetValue("first")
	mm, _ := m.startSearch()
	m = mm.(Model)
	m.searchInput.SetValue("second")
	mm, _ = m.startSearch()
	m = mm.(Model)

	stale := searchResultsMsg{gen: m.searchGen - 1, tracks: []core.Track{{ID: "stale", Title: "Stale"}}}
	fresh := searchResultsMsg{gen: m.searchGen, tracks: []core.Track{{ID: "fresh", Title: "Fresh"}}}

	// Fresh result lands first, stale arrives late.
	updated, _ := m.Update(fresh)
	m = updated.(Model)
	updated, _ = m.Update(stale)
	m = updated.(Model)

	if len(m.results) != 1 || m.results[0].ID != "fresh" {
		t.Errorf("results = %v, want only the latest query's results", m.results)
	}
}

func TestEndToEndSearchPlayToggle(t *testing.T) {
	m, fp, fc := newTestModel(t)
	fp.tracks = threeTracks()

	// Enter search mode, submit the query.
	m = step(t, m, keyRune(':'))
	m = step(t, m, keyRune('s'))
	m.searchInput.SetValue("foo")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.results) != 3 {
		t.Fatalf("search returned %d results, want 3", len(m.results))
	}

	// Select track 2 and play it.
	m = step(t, m, keyRune('j'))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(fc.loads) != 1 {
		t.Fatalf("player received %d load calls, want exactly 1", len(fc.loads))
	}
	if fc.loads[0] != "stream://t2" {
		t.Errorf("loaded %q, want track 2's resolved source", fc.loads[0])
	}
	if !m.state.HasTrack() || m.state.Track.ID != "t2" {
		t.Fatalf("current track = %+v, want t2", m.state.Track)
	}

	// Space toggles pause false -> true -> false.
	m = step(t, m, keyRune(':'))
	m = step(t, m, keyRune('p'))
	if m.mode != ModePlayer {
		t.Fatalf("mode = %v, want Player", m.mode)
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.state.Paused || !fc.paused {
		t.Error("after first space: paused = false, want true")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.state.Paused || fc.paused {
		t.Error("after second space: paused = true, want false")
	}
	if fc.toggles != 2 {
		t.Errorf("toggle count = %d, want 2", fc.toggles)
	}
}

func TestAutoAdvanceThroughQueue(t *testing.T) {
	m, _, fc := newTestModel(t)
	tracks := threeTracks()

	mm, cmd := m.playSequence(tracks, 0)
	m = mm.(Model)
	m = step(t, m, cmd())

	if len(fc.loads) != 1 {
		t.Fatalf("loads = %d, want 1", len(fc.loads))
	}

	// Each end-of-track edge advances to the next entry.
	m = step(t, m, statusMsg{status: core.Status{Ended: true}})
	if len(fc.loads) != 2 || fc.loads[1] != "stream://t2" {
		t.Fatalf("after first edge loads = %v, want t2 appended", fc.loads)
	}
	m = step(t, m, statusMsg{status: core.Status{Ended: true}})
	if len(fc.loads) != 3 || fc.loads[2] != "stream://t3" {
		t.Fatalf("after second edge loads = %v, want t3 appended", fc.loads)
	}

	// After the last track ends the queue disengages and nothing loads.
	m = step(t, m, statusMsg{status: core.Status{Ended: true}})
	if len(fc.loads) != 3 {
		t.Errorf("after final edge loads = %d, want no further load", len(fc.loads))
	}
	if m.queue.Engaged() {
		t.Error("queue still engaged after final track ended")
	}
	if m.state.HasTrack() {
		t.Error("current track still set after playback stopped")
	}
}

func TestAutoAdvanceSkipsRestrictedTrack(t *testing.T) {
	m, fp, fc := newTestModel(t)
	tracks := threeTracks()
	fp.resolveErr["t2"] = plumeerr.ErrRestricted

	mm, cmd := m.playSequence(tracks, 0)
	m = mm.(Model)
	m = step(t, m, cmd())

	// Track 1 ends; track 2 is restricted and must be skipped, not halt the
	// queue.
	m = step(t, m, statusMsg{status: core.Status{Ended: true}})

	if len(fc.loads) != 2 {
		t.Fatalf("loads = %v, want t1 then t3", fc.loads)
	}
	if fc.loads[1] != "stream://t3" {
		t.Errorf("loaded %q after restricted skip, want t3", fc.loads[1])
	}
}

func TestSkipNextWithoutQueueIsNoop(t *testing.T) {
	m, _, fc := newTestModel(t)
	m.mode = ModePlayer
	track := core.Track{ID: "solo", Title: "Solo", Artists: []string{"A"}}
	m.state.Track = &track
	m.queue.Disengage()

	// Single-track play (e.g. from history) has no queue pointer; n must
	// leave the playing track alone.
	m = step(t, m, keyRune('n'))

	if !m.state.HasTrack() || m.state.Track.ID != "solo" {
		t.Error("skip-next with disengaged queue cleared the current track")
	}
	if len(fc.loads) != 0 {
		t.Errorf("player received %d load calls, want 0", len(fc.loads))
	}
}

func TestSkipNextOnLastEntryKeepsTrackPlaying(t *testing.T) {
	m, _, fc := newTestModel(t)
	tracks := threeTracks()

	mm, cmd := m.playSequence(tracks, 2)
	m = mm.(Model)
	m = step(t, m, cmd())
	m.mode = ModePlayer

	m = step(t, m, keyRune('n'))

	if len(fc.loads) != 1 {
		t.Errorf("loads = %v, want only the initial load", fc.loads)
	}
	if !m.state.HasTrack() || m.state.Track.ID != "t3" {
		t.Error("skip-next past the end cleared the playing track")
	}
	if m.queue.Engaged() {
		t.Error("queue still engaged after skipping past the end")
	}
}

func TestExpiredErrorClearsOnTick(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = m.withError(errors.New("transient failure"))
	m.errorExpiry = time.Now().Add(-time.Second)

	updated, _ := m.Update(tickMsg(time.Now()))
	m = updated.(Model)

	if m.lastError != nil {
		t.Error("expired error still set after tick")
	}
}

func TestVolumeClampAtBoundary(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.mode = ModePlayer
	m.state.Volume = 98

	for i := 0; i < 3; i++ {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.state.Volume != 100 {
		t.Errorf("volume = %d after three +5 from 98, want 100", m.state.Volume)
	}

	m.state.Volume = 3
	for i := 0; i < 3; i++ {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.state.Volume != 0 {
		t.Errorf("volume = %d after three -5 from 3, want 0", m.state.Volume)
	}
}

func TestPlayFromHistoryWritesThrough(t *testing.T) {
	m, _, fc := newTestModel(t)
	track := core.Track{ID: "h1", Title: "Old Favorite", Artists: []string{"A"}}
	if err := m.app.Store.AppendHistory(track); err != nil {
		t.Fatal(err)
	}

	m = step(t, m, keyRune(':'))
	m = step(t, m, keyRune('h'))
	if m.mode != ModeHistory || len(m.history) != 1 {
		t.Fatalf("history mode with %d entries, want 1", len(m.history))
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(fc.loads) != 1 {
		t.Fatalf("loads = %d, want 1", len(fc.loads))
	}

	// Replaying moved the entry to the front without duplicating it.
	entries, err := m.app.Store.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("history has %d entries after replay, want 1", len(entries))
	}
}

func TestCreatePlaylistPopupFlow(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.mode = ModeUserPlaylist

	m = step(t, m, keyRune('`'))
	if m.popup != popupNamePlaylist {
		t.Fatal("backtick did not open the name popup")
	}

	for _, r := range "road trip" {
		m = step(t, m, keyRune(r))
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.popup != popupNone {
		t.Error("popup still open after confirm")
	}
	if len(m.playlistNames) != 1 || m.playlistNames[0] != "road trip" {
		t.Errorf("playlists = %v, want the new playlist", m.playlistNames)
	}

	// Creating the same name again surfaces DuplicateName inline.
	m = step(t, m, keyRune('`'))
	for _, r := range "road trip" {
		m = step(t, m, keyRune(r))
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.lastError == nil {
		t.Error("duplicate playlist name did not surface an error")
	}
	if len(m.playlistNames) != 1 {
		t.Errorf("playlists = %v, want unchanged", m.playlistNames)
	}
}

func TestAddToPlaylistPopup(t *testing.T) {
	m, fp, _ := newTestModel(t)
	fp.tracks = threeTracks()
	if err := m.app.Store.CreatePlaylist("mix"); err != nil {
		t.Fatal(err)
	}

	m.mode = ModeSearch
	m.searchFocus = FocusResults
	m.results = fp.tracks

	m = step(t, m, keyRune('a'))
	if m.popup != popupChoosePlaylist {
		t.Fatal("a did not open the playlist chooser")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	tracks, err := m.app.Store.Playlist("mix")
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].ID != "t1" {
		t.Errorf("playlist tracks = %v, want the selected result", tracks)
	}
}

func TestUnknownKeyIsNoop(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.mode = ModeHistory

	before := m
	m = step(t, m, keyRune('z'))
	if m.mode != before.mode || m.lastError != nil {
		t.Error("unknown key changed state or raised an error")
	}
}
