package core

import (
	"fmt"
	"strings"
	"time"
)

// Track represents a single playable item as reported by the provider.
// Tracks are immutable once fetched; the UI caches them for the session.
type Track struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Artists     []string      `json:"artists"`
	Duration    time.Duration `json:"duration"`
	PlaylistPos int           `json:"playlist_pos,omitempty"`
}

// ArtistLine returns the track's artists joined for display.
func (t *Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// FormatDuration renders a duration as M:SS, or H:MM:SS past an hour.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
