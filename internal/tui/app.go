// Package tui is the interaction core: a modal, keyboard-driven interface
// that drives the provider, the player process and the store. A single
// Update loop owns all state; provider and player calls run as commands
// that report back via messages, tagged with generation counters so stale
// results are discarded instead of overwriting newer state.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plume-player/plume/internal/browser"
	"github.com/plume-player/plume/internal/config"
	"github.com/plume-player/plume/internal/core"
	plumeerr "github.com/plume-player/plume/internal/errors"
	"github.com/plume-player/plume/internal/provider"
	"github.com/plume-player/plume/internal/storage"
	"github.com/plume-player/plume/internal/tui/components"
	"github.com/plume-player/plume/internal/tui/styles"
)

const asyncTimeout = 30 * time.Second

// App bundles the external collaborators the UI drives.
type App struct {
	Provider provider.Client
	Player   core.Controller
	Store    *storage.Store
	Config   *config.Config
}

// popupKind selects the active modal overlay, if any.
type popupKind int

const (
	popupNone popupKind = iota
	popupChoosePlaylist
	popupNamePlaylist
)

// Messages
type tickMsg time.Time
type statusMsg struct {
	status core.Status
	err    error
}
type searchResultsMsg struct {
	gen    uint64
	tracks []core.Track
	err    error
}
type playlistRefsMsg struct {
	gen  uint64
	refs []provider.PlaylistRef
	err  error
}
type playlistTracksMsg struct {
	gen    uint64
	title  string
	tracks []core.Track
	err    error
}
type trackLoadedMsg struct {
	gen       uint64
	track     core.Track
	fromQueue bool
	err       error
}
type errMsg error

// Model is the main TUI model
type Model struct {
	app    *App
	width  int
	height int

	mode          Mode
	returnMode    Mode // where esc from the playlist detail view goes back to
	pendingLeader bool

	// Search state
	searchKind   SearchKind
	searchFocus  SearchFocus
	searchInput  textinput.Model
	results      []core.Track
	resultCursor int
	refs         []provider.PlaylistRef
	refCursor    int
	searching    bool
	searchGen    uint64

	// History state
	history       []core.HistoryEntry
	historyCursor int

	// Playlist state
	playlistNames  []string
	playlistCursor int
	openedPlaylist string
	playlistTracks []core.Track
	trackCursor    int
	expandGen      uint64

	// Popup state
	popup       popupKind
	popupCursor int
	popupTrack  core.Track
	nameInput   textinput.Model

	// Playback state
	queue   core.Queue
	state   core.PlaybackState
	loadGen uint64

	// Components
	trackList    *components.TrackList
	historyView  *components.History
	playlistView *components.Playlists
	playerBar    *components.PlayerBar
	queueView    *components.Queue

	// Error handling
	lastError   error
	errorExpiry time.Time

	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	si := textinput.New()
	si.Placeholder = "Search songs..."
	si.CharLimit = 200
	si.Width = 50
	si.Focus()

	ni := textinput.New()
	ni.Placeholder = "Playlist name"
	ni.CharLimit = 100
	ni.Width = 40

	return Model{
		app:          app,
		mode:         ModeHome,
		searchInput:  si,
		nameInput:    ni,
		state:        core.PlaybackState{Volume: app.Config.Playback.Volume},
		trackList:    components.NewTrackList(),
		historyView:  components.NewHistory(),
		playlistView: components.NewPlaylists(),
		playerBar:    components.NewPlayerBar(),
		queueView:    components.NewQueue(),
	}
}

func (m Model) tickInterval() time.Duration {
	return time.Duration(m.app.Config.TUI.TickInterval) * time.Millisecond
}

func (m Model) loop() bool {
	return m.app.Config.Playback.Advance == config.AdvanceLoop
}

// Commands

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) pollStatus() tea.Cmd {
	ctrl := m.app.Player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		st, err := ctrl.Status(ctx)
		return statusMsg{status: st, err: err}
	}
}

func (m Model) applyVolume() tea.Cmd {
	ctrl := m.app.Player
	volume := m.state.Volume
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ctrl.SetVolume(ctx, volume); err != nil {
			return errMsg(err)
		}
		return nil
	}
}

func searchCmd(prov provider.Client, gen uint64, kind SearchKind, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if kind == KindPlaylists {
			refs, err := prov.SearchPlaylists(ctx, query)
			return playlistRefsMsg{gen: gen, refs: refs, err: err}
		}
		tracks, err := prov.Search(ctx, query)
		return searchResultsMsg{gen: gen, tracks: tracks, err: err}
	}
}

func expandCmd(prov provider.Client, gen uint64, ref provider.PlaylistRef) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		tracks, err := prov.ExpandPlaylist(ctx, ref)
		return playlistTracksMsg{gen: gen, title: ref.Title, tracks: tracks, err: err}
	}
}

func loadCmd(app *App, gen uint64, track core.Track, fromQueue bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		locator, err := app.Provider.Resolve(ctx, track.ID)
		if err != nil {
			return trackLoadedMsg{gen: gen, track: track, fromQueue: fromQueue, err: err}
		}
		if err := app.Player.Load(ctx, locator); err != nil {
			return trackLoadedMsg{gen: gen, track: track, fromQueue: fromQueue, err: err}
		}
		return trackLoadedMsg{gen: gen, track: track, fromQueue: fromQueue}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), textinput.Blink)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.lastError != nil && time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		return m, tea.Batch(m.tick(), m.pollStatus())

	case statusMsg:
		return m.handleStatus(msg)

	case searchResultsMsg:
		if msg.gen != m.searchGen {
			return m, nil
		}
		m.searching = false
		m.resultCursor = 0
		if msg.err != nil {
			m.results = nil
			return m.withError(msg.err), nil
		}
		m.results = msg.tracks
		return m, nil

	case playlistRefsMsg:
		if msg.gen != m.searchGen {
			return m, nil
		}
		m.searching = false
		m.refCursor = 0
		if msg.err != nil {
			m.refs = nil
			return m.withError(msg.err), nil
		}
		m.refs = msg.refs
		return m, nil

	case playlistTracksMsg:
		if msg.gen != m.expandGen {
			return m, nil
		}
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.openedPlaylist = msg.title
		m.playlistTracks = msg.tracks
		m.trackCursor = 0
		m.returnMode = ModeSearch
		m.mode = ModePlaylist
		return m, nil

	case trackLoadedMsg:
		return m.handleLoaded(msg)

	case errMsg:
		if msg != nil {
			return m.withError(msg), nil
		}
		return m, nil
	}

	return m, nil
}

func (m Model) withError(err error) Model {
	m.lastError = err
	m.errorExpiry = time.Now().Add(5 * time.Second)
	return m
}

func (m Model) handleStatus(msg statusMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, plumeerr.ErrPlayerGone) {
			// Playback only: the app stays interactive for a retry.
			m.state.Track = nil
			m.queue.Disengage()
		}
		return m.withError(msg.err), nil
	}

	if !m.state.HasTrack() {
		return m, nil
	}

	m.state.Position = msg.status.Position
	if msg.status.Duration > 0 {
		m.state.Duration = msg.status.Duration
	}
	m.state.Paused = msg.status.Paused

	if msg.status.Ended {
		return m.autoAdvance()
	}
	return m, nil
}

// autoAdvance reacts to an end-of-track edge: load the next queue entry, or
// stop when the queue runs out (or was never engaged).
func (m Model) autoAdvance() (tea.Model, tea.Cmd) {
	if !m.queue.Engaged() {
		m.state.Track = nil
		m.state.Position = 0
		return m, nil
	}

	next := m.queue.Advance(m.loop())
	if next == nil {
		m.state.Track = nil
		m.state.Position = 0
		return m, nil
	}

	m.loadGen++
	return m, loadCmd(m.app, m.loadGen, *next, true)
}

func (m Model) handleLoaded(msg trackLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.loadGen {
		return m, nil
	}

	if msg.err != nil {
		mm := m.withError(msg.err)
		if msg.fromQueue && skippable(msg.err) {
			// A track the provider refuses to play must not halt the
			// queue: move on to the next one.
			next := mm.queue.Advance(mm.loop())
			if next != nil {
				mm.loadGen++
				return mm, loadCmd(mm.app, mm.loadGen, *next, true)
			}
		}
		mm.state.Track = nil
		return mm, nil
	}

	track := msg.track
	m.state.Track = &track
	m.state.Position = 0
	m.state.Duration = track.Duration
	m.state.Paused = false

	// Write through to durable history; failure loses durability, not the
	// session.
	var cmds []tea.Cmd
	if err := m.app.Store.AppendHistory(track); err != nil {
		m = m.withError(err)
	}
	cmds = append(cmds, m.applyVolume())
	return m, tea.Batch(cmds...)
}

func skippable(err error) bool {
	return errors.Is(err, plumeerr.ErrRestricted) ||
		errors.Is(err, plumeerr.ErrLoadFailed) ||
		errors.Is(err, plumeerr.ErrNotFound)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.popup != popupNone {
		return m.handlePopupKey(msg)
	}

	ctx := keyContext{
		mode:        m.mode,
		searchKind:  m.searchKind,
		searchFocus: m.searchFocus,
		leader:      m.pendingLeader,
		capturing:   m.mode == ModeSearch && m.searchFocus == FocusInput,
	}

	cmd := resolveKey(ctx, msg.String())
	m.pendingLeader = cmd == CmdLeader

	if cmd == CmdNone && ctx.capturing && !ctx.leader {
		var inputCmd tea.Cmd
		m.searchInput, inputCmd = m.searchInput.Update(msg)
		return m, inputCmd
	}

	return m.apply(cmd)
}

func (m Model) apply(cmd Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case CmdQuit:
		m.quitting = true
		return m, tea.Quit

	case CmdGoSearch:
		m.mode = ModeSearch
		m.searchFocus = FocusInput
		m.searchInput.Focus()
		return m, textinput.Blink

	case CmdGoHistory:
		m.mode = ModeHistory
		m.historyCursor = 0
		return m.reloadHistory(), nil

	case CmdGoPlayer:
		m.mode = ModePlayer
		return m, nil

	case CmdGoPlaylists:
		m.mode = ModeUserPlaylist
		m.playlistCursor = 0
		return m.reloadPlaylists(), nil

	case CmdToggleSearchKind:
		if m.searchKind == KindSongs {
			m.searchKind = KindPlaylists
			m.searchInput.Placeholder = "Search playlists..."
		} else {
			m.searchKind = KindSongs
			m.searchInput.Placeholder = "Search songs..."
		}
		if m.searchInput.Value() != "" {
			return m.startSearch()
		}
		return m, nil

	case CmdToggleFocus:
		if m.searchFocus == FocusInput {
			m.searchFocus = FocusResults
			m.searchInput.Blur()
			return m, nil
		}
		m.searchFocus = FocusInput
		m.searchInput.Focus()
		return m, textinput.Blink

	case CmdUp:
		m.moveCursor(-1)
		return m, nil

	case CmdDown:
		m.moveCursor(1)
		return m, nil

	case CmdSelect:
		return m.handleSelect()

	case CmdAddToPlaylist:
		return m.openAddPopup()

	case CmdPlayAll:
		if m.mode == ModePlaylist && len(m.playlistTracks) > 0 {
			return m.playSequence(m.playlistTracks, 0)
		}
		return m, nil

	case CmdCreatePlaylist:
		m.popup = popupNamePlaylist
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink

	case CmdDelete:
		return m.handleDelete()

	case CmdNext:
		if !m.queue.Engaged() {
			return m, nil
		}
		if next := m.queue.Advance(m.loop()); next != nil {
			m.loadGen++
			return m, loadCmd(m.app, m.loadGen, *next, true)
		}
		// Skipping past the last entry disengages the queue; the current
		// track plays out and its ended edge stops playback.
		return m, nil

	case CmdPrev:
		if prev := m.queue.Retreat(); prev != nil {
			m.loadGen++
			return m, loadCmd(m.app, m.loadGen, *prev, true)
		}
		return m, nil

	case CmdVolumeUp:
		return m.adjustVolume(m.app.Config.Player.VolumeStep)

	case CmdVolumeDown:
		return m.adjustVolume(-m.app.Config.Player.VolumeStep)

	case CmdSeekForward:
		return m, m.seek(time.Duration(m.app.Config.Player.SeekStep) * time.Second)

	case CmdSeekBackward:
		return m, m.seek(-time.Duration(m.app.Config.Player.SeekStep) * time.Second)

	case CmdTogglePause:
		if !m.state.HasTrack() {
			return m, nil
		}
		m.state.Paused = !m.state.Paused
		ctrl := m.app.Player
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := ctrl.Toggle(ctx); err != nil {
				return errMsg(err)
			}
			return nil
		}

	case CmdOpenInBrowser:
		if !m.state.HasTrack() {
			return m, nil
		}
		url := provider.PageURL(m.state.Track.ID)
		return m, func() tea.Msg {
			if err := browser.Open(url); err != nil {
				return errMsg(err)
			}
			return nil
		}

	case CmdBack:
		if m.mode == ModePlaylist {
			m.mode = m.returnMode
		} else if m.mode == ModeSearch && m.searchFocus == FocusInput {
			m.searchFocus = FocusResults
			m.searchInput.Blur()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	move := func(cursor *int, length int) {
		*cursor += delta
		if *cursor < 0 {
			*cursor = 0
		}
		if *cursor >= length && length > 0 {
			*cursor = length - 1
		}
		if length == 0 {
			*cursor = 0
		}
	}

	switch m.mode {
	case ModeSearch:
		if m.searchKind == KindSongs {
			move(&m.resultCursor, len(m.results))
		} else {
			move(&m.refCursor, len(m.refs))
		}
	case ModeHistory:
		move(&m.historyCursor, len(m.history))
	case ModeUserPlaylist:
		move(&m.playlistCursor, len(m.playlistNames))
	case ModePlaylist:
		move(&m.trackCursor, len(m.playlistTracks))
	}
}

func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		if m.searchFocus == FocusInput {
			if m.searchInput.Value() == "" {
				return m, nil
			}
			m.searchFocus = FocusResults
			m.searchInput.Blur()
			return m.startSearch()
		}
		if m.searchKind == KindSongs {
			if m.resultCursor < len(m.results) {
				return m.playSequence(m.results, m.resultCursor)
			}
			return m, nil
		}
		if m.refCursor < len(m.refs) {
			m.expandGen++
			return m, expandCmd(m.app.Provider, m.expandGen, m.refs[m.refCursor])
		}
		return m, nil

	case ModeHistory:
		if m.historyCursor < len(m.history) {
			m.queue.Disengage()
			m.loadGen++
			return m, loadCmd(m.app, m.loadGen, m.history[m.historyCursor].Track, false)
		}
		return m, nil

	case ModeUserPlaylist:
		if m.playlistCursor < len(m.playlistNames) {
			name := m.playlistNames[m.playlistCursor]
			tracks, err := m.app.Store.Playlist(name)
			if err != nil {
				return m.withError(err), nil
			}
			m.openedPlaylist = name
			m.playlistTracks = tracks
			m.trackCursor = 0
			m.returnMode = ModeUserPlaylist
			m.mode = ModePlaylist
		}
		return m, nil

	case ModePlaylist:
		if m.trackCursor < len(m.playlistTracks) {
			return m.playSequence(m.playlistTracks, m.trackCursor)
		}
		return m, nil
	}

	return m, nil
}

// playSequence binds the queue over tracks starting at index and loads the
// current entry.
func (m Model) playSequence(tracks []core.Track, index int) (tea.Model, tea.Cmd) {
	m.queue.Bind(tracks, index)
	current := m.queue.Current()
	if current == nil {
		return m, nil
	}
	m.loadGen++
	return m, loadCmd(m.app, m.loadGen, *current, true)
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.searchGen++
	m.searching = true
	return m, searchCmd(m.app.Provider, m.searchGen, m.searchKind, m.searchInput.Value())
}

func (m Model) adjustVolume(delta int) (tea.Model, tea.Cmd) {
	volume := m.state.Volume + delta
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	m.state.Volume = volume
	return m, m.applyVolume()
}

func (m Model) seek(delta time.Duration) tea.Cmd {
	if !m.state.HasTrack() {
		return nil
	}
	ctrl := m.app.Player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ctrl.Seek(ctx, delta); err != nil {
			return errMsg(err)
		}
		return nil
	}
}

func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeUserPlaylist:
		if m.playlistCursor < len(m.playlistNames) {
			if err := m.app.Store.DeletePlaylist(m.playlistNames[m.playlistCursor]); err != nil {
				return m.withError(err), nil
			}
			return m.reloadPlaylists(), nil
		}
	case ModeHistory:
		if m.historyCursor < len(m.history) {
			if err := m.app.Store.DeleteHistoryEntry(m.history[m.historyCursor].Track.ID); err != nil {
				return m.withError(err), nil
			}
			return m.reloadHistory(), nil
		}
	}
	return m, nil
}

func (m Model) reloadHistory() Model {
	entries, err := m.app.Store.History()
	if err != nil {
		return m.withError(err)
	}
	m.history = entries
	if m.historyCursor >= len(entries) {
		m.historyCursor = 0
	}
	return m
}

func (m Model) reloadPlaylists() Model {
	names, err := m.app.Store.Playlists()
	if err != nil {
		return m.withError(err)
	}
	m.playlistNames = names
	if m.playlistCursor >= len(names) {
		m.playlistCursor = 0
	}
	return m
}

// selectedTrack returns the track under the active mode's cursor.
func (m Model) selectedTrack() (core.Track, bool) {
	switch m.mode {
	case ModeSearch:
		if m.searchKind == KindSongs && m.resultCursor < len(m.results) {
			return m.results[m.resultCursor], true
		}
	case ModeHistory:
		if m.historyCursor < len(m.history) {
			return m.history[m.historyCursor].Track, true
		}
	case ModePlaylist:
		if m.trackCursor < len(m.playlistTracks) {
			return m.playlistTracks[m.trackCursor], true
		}
	}
	return core.Track{}, false
}

func (m Model) openAddPopup() (tea.Model, tea.Cmd) {
	track, ok := m.selectedTrack()
	if !ok {
		return m, nil
	}
	mm := m.reloadPlaylists()
	mm.popup = popupChoosePlaylist
	mm.popupCursor = 0
	mm.popupTrack = track
	return mm, nil
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.popup {
	case popupNamePlaylist:
		switch msg.String() {
		case "esc":
			m.popup = popupNone
			m.nameInput.Blur()
			return m, nil
		case "enter":
			name := m.nameInput.Value()
			m.popup = popupNone
			m.nameInput.Blur()
			if err := m.app.Store.CreatePlaylist(name); err != nil {
				return m.withError(err), nil
			}
			return m.reloadPlaylists(), nil
		}
		var inputCmd tea.Cmd
		m.nameInput, inputCmd = m.nameInput.Update(msg)
		return m, inputCmd

	case popupChoosePlaylist:
		switch msg.String() {
		case "esc":
			m.popup = popupNone
			return m, nil
		case "up", "k":
			if m.popupCursor > 0 {
				m.popupCursor--
			}
			return m, nil
		case "down", "j":
			if m.popupCursor < len(m.playlistNames)-1 {
				m.popupCursor++
			}
			return m, nil
		case "enter":
			m.popup = popupNone
			if m.popupCursor < len(m.playlistNames) {
				name := m.playlistNames[m.popupCursor]
				if err := m.app.Store.AddTrack(name, m.popupTrack); err != nil {
					return m.withError(err), nil
				}
			}
			return m, nil
		}
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	if m.popup == popupNamePlaylist {
		content := lipgloss.JoinVertical(lipgloss.Left,
			styles.Title.Render("New playlist"),
			"",
			m.nameInput.View(),
			"",
			styles.Dim.Render("Enter:create  Esc:cancel"),
		)
		return components.Overlay(content, m.width, m.height)
	}
	if m.popup == popupChoosePlaylist {
		return components.Overlay(
			components.Chooser("Add to playlist", m.playlistNames, m.popupCursor),
			m.width, m.height)
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	barHeight := 8
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar) - barHeight

	var content string
	switch m.mode {
	case ModeHome:
		content = m.renderHome(contentHeight)
	case ModeSearch:
		content = m.renderSearch(contentHeight)
	case ModeHistory:
		content = m.historyView.Render(m.history, m.historyCursor, m.width-2, contentHeight, true)
	case ModeUserPlaylist:
		content = m.playlistView.Render(m.playlistNames, m.playlistCursor, m.width-2, contentHeight, true)
	case ModePlaylist:
		content = m.trackList.Render(m.openedPlaylist, m.playlistTracks, m.trackCursor, m.width-2, contentHeight, true)
	case ModePlayer:
		half := (m.width - 4) / 2
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			m.playerBar.Render(m.state, half, contentHeight, true),
			m.queueView.Render(&m.queue, half, contentHeight, false),
		)
	}

	bar := m.playerBar.Render(m.state, m.width-2, barHeight-2, m.mode == ModePlayer)
	if m.mode == ModePlayer {
		bar = ""
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, bar, statusBar)
}

func (m Model) renderHeader() string {
	tabs := []Mode{ModeHome, ModeSearch, ModeHistory, ModeUserPlaylist, ModePlayer}
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := " " + tab.String() + " "
		if tab == m.mode || (tab == ModeUserPlaylist && m.mode == ModePlaylist) {
			parts = append(parts, styles.Highlight.Render(label))
		} else {
			parts = append(parts, styles.Dim.Render(label))
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m Model) renderHome(height int) string {
	help := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("plume"),
		"",
		styles.Muted.Render(":s search   :h history   :l playlists   :p player   :q quit"),
		styles.Muted.Render(";  toggle songs/playlists in search"),
		styles.Muted.Render("`  create playlist"),
	)
	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(help)
}

func (m Model) renderSearch(height int) string {
	kind := "Songs"
	if m.searchKind == KindPlaylists {
		kind = "Playlists"
	}

	inputLine := m.searchInput.View()
	if m.searching {
		inputLine += "  " + styles.Muted.Render("searching...")
	}

	inputPanel := styles.Panel(m.searchFocus == FocusInput).
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.PanelTitle("Search: "+kind, m.searchFocus == FocusInput),
			inputLine,
		))

	resultsHeight := height - lipgloss.Height(inputPanel)
	var resultsPanel string
	if m.searchKind == KindSongs {
		resultsPanel = m.trackList.Render("Results", m.results, m.resultCursor,
			m.width-2, resultsHeight, m.searchFocus == FocusResults)
	} else {
		resultsPanel = m.playlistView.RenderRefs(m.refs, m.refCursor,
			m.width-2, resultsHeight, m.searchFocus == FocusResults)
	}

	return lipgloss.JoinVertical(lipgloss.Left, inputPanel, resultsPanel)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render(":q quit  :s/:h/:l/:p modes  j/k nav  Enter select  a add  Space pause")
	if m.pendingLeader {
		status = styles.Highlight.Render(":")
	}
	if m.lastError != nil && time.Now().Before(m.errorExpiry) {
		line := "Error: " + m.lastError.Error()
		if s := plumeerr.GetSuggestion(m.lastError); s != "" {
			line += " (" + s + ")"
		}
		status = styles.ErrorText.Render(line)
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

// Run starts the TUI application. Teardown is ordered: the program releases
// the terminal first, then the caller shuts down the player and closes the
// store.
func Run(app *App) error {
	if app.Config.Log.File != "" {
		f, err := tea.LogToFile(app.Config.Log.File, "plume")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
