package tui

// Mode is the top-level modal state. Exactly one mode is active at a time.
type Mode int

const (
	ModeHome Mode = iota
	ModeSearch
	ModeHistory
	ModePlaylist // detail view of an opened playlist
	ModeUserPlaylist
	ModePlayer
)

func (m Mode) String() string {
	switch m {
	case ModeHome:
		return "Home"
	case ModeSearch:
		return "Search"
	case ModeHistory:
		return "History"
	case ModePlaylist:
		return "Playlist"
	case ModeUserPlaylist:
		return "My Playlists"
	case ModePlayer:
		return "Player"
	}
	return "?"
}

// SearchKind is the nested two-state toggle within Search mode.
type SearchKind int

const (
	KindSongs SearchKind = iota
	KindPlaylists
)

// SearchFocus selects whether the query input or the result list owns
// navigation keys within Search mode.
type SearchFocus int

const (
	FocusInput SearchFocus = iota
	FocusResults
)

// Command is a discrete action produced by the input router. Unrecognized
// keys resolve to CmdNone, never an error.
type Command int

const (
	CmdNone Command = iota
	CmdLeader
	CmdQuit
	CmdGoSearch
	CmdGoHistory
	CmdGoPlayer
	CmdGoPlaylists
	CmdToggleSearchKind
	CmdToggleFocus
	CmdUp
	CmdDown
	CmdSelect
	CmdAddToPlaylist
	CmdPlayAll
	CmdCreatePlaylist
	CmdDelete
	CmdNext
	CmdPrev
	CmdVolumeUp
	CmdVolumeDown
	CmdSeekForward
	CmdSeekBackward
	CmdTogglePause
	CmdOpenInBrowser
	CmdBack
)

// keyContext is the router's view of the state machine: the active mode,
// its nested sub-modes, whether a leader key is pending, and whether a text
// input is capturing keystrokes.
type keyContext struct {
	mode        Mode
	searchKind  SearchKind
	searchFocus SearchFocus
	leader      bool
	capturing   bool
}

// resolveKey maps a key to a command, scoped first by mode and sub-mode,
// falling back to the global table. While a text input is capturing, only
// confirm, cancel and focus-toggle keys escape; everything else is routed
// to the input verbatim (CmdNone).
func resolveKey(ctx keyContext, key string) Command {
	if ctx.capturing {
		switch key {
		case "enter":
			return CmdSelect
		case "esc":
			return CmdBack
		case "tab":
			return CmdToggleFocus
		}
		return CmdNone
	}

	if ctx.leader {
		switch key {
		case "q":
			return CmdQuit
		case "s":
			return CmdGoSearch
		case "h":
			return CmdGoHistory
		case "p":
			return CmdGoPlayer
		case "l":
			return CmdGoPlaylists
		}
		return CmdNone
	}

	if key == ":" {
		return CmdLeader
	}

	switch ctx.mode {
	case ModeSearch:
		switch key {
		case ";":
			return CmdToggleSearchKind
		case "tab":
			return CmdToggleFocus
		case "up", "k":
			return CmdUp
		case "down", "j":
			return CmdDown
		case "enter":
			return CmdSelect
		case "a":
			if ctx.searchKind == KindSongs {
				return CmdAddToPlaylist
			}
		case "esc":
			return CmdBack
		}

	case ModeHistory:
		switch key {
		case "up", "k":
			return CmdUp
		case "down", "j":
			return CmdDown
		case "enter":
			return CmdSelect
		case "a":
			return CmdAddToPlaylist
		case "d":
			return CmdDelete
		}

	case ModeUserPlaylist:
		switch key {
		case "`":
			return CmdCreatePlaylist
		case "up", "k":
			return CmdUp
		case "down", "j":
			return CmdDown
		case "enter":
			return CmdSelect
		case "d":
			return CmdDelete
		}

	case ModePlaylist:
		switch key {
		case "p":
			return CmdPlayAll
		case "up", "k":
			return CmdUp
		case "down", "j":
			return CmdDown
		case "enter":
			return CmdSelect
		case "a":
			return CmdAddToPlaylist
		case "esc":
			return CmdBack
		}

	case ModePlayer:
		switch key {
		case "n":
			return CmdNext
		case "p":
			return CmdPrev
		case "up":
			return CmdVolumeUp
		case "down":
			return CmdVolumeDown
		case "right":
			return CmdSeekForward
		case "left":
			return CmdSeekBackward
		case " ":
			return CmdTogglePause
		case "o":
			return CmdOpenInBrowser
		}
	}

	return CmdNone
}
