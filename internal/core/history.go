package core

import "time"

// HistoryEntry represents a track in play history.
type HistoryEntry struct {
	Track    Track     `json:"track"`
	PlayedAt time.Time `json:"played_at"`
}

// Playlist is a named, ordered sequence of tracks curated by the user.
type Playlist struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}
