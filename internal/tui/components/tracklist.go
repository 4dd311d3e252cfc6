package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/plume-player/plume/internal/core"
	"github.com/plume-player/plume/internal/tui/styles"
)

// TrackList displays a navigable list of tracks. It backs the search
// results pane and the playlist detail view.
type TrackList struct{}

// NewTrackList creates a new TrackList component
func NewTrackList() *TrackList {
	return &TrackList{}
}

// Render renders the track list panel
func (l *TrackList) Render(title string, tracks []core.Track, cursor, width, height int, focused bool) string {
	heading := styles.PanelTitle(title, focused)

	var content string
	if len(tracks) == 0 {
		content = styles.Muted.Render("Nothing here yet")
	} else {
		content = l.renderTracks(tracks, cursor, width-4, height-4, focused)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		heading,
		"",
		content,
	))
}

func (l *TrackList) renderTracks(tracks []core.Track, cursor, width, maxLines int, focused bool) string {
	if cursor >= len(tracks) {
		cursor = len(tracks) - 1
	}
	if cursor < 0 {
		cursor = 0
	}

	// Keep the cursor visible by scrolling the window around it.
	start := 0
	if cursor >= maxLines {
		start = cursor - maxLines + 1
	}
	end := start + maxLines
	if end > len(tracks) {
		end = len(tracks)
	}

	// Fixed overhead: selector (2) + " — " (3) + duration (8)
	const overhead = 13

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		track := tracks[i]

		selector := "  "
		if focused && i == cursor {
			selector = "▸ "
		}

		title, artist := fitTitleArtist(track.Title, track.ArtistLine(), width-overhead)
		duration := core.FormatDuration(track.Duration)

		var line string
		if focused && i == cursor {
			line = selector + styles.Highlight.Render(fmt.Sprintf("%s — %s", title, artist)) +
				" " + styles.Dim.Render(duration)
		} else {
			line = fmt.Sprintf("%s%s — %s %s",
				selector,
				title,
				styles.Muted.Render(artist),
				styles.Dim.Render(duration))
		}
		lines = append(lines, line)
	}

	if end < len(tracks) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("  ... and %d more", len(tracks)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fitTitleArtist truncates title and artist to fit the available width,
// giving the artist at least a third of the space.
func fitTitleArtist(title, artist string, available int) (string, string) {
	if len(title)+len(artist) <= available {
		return title, artist
	}

	minArtist := available / 3
	if minArtist < 8 {
		minArtist = 8
	}
	if minArtist > available-8 {
		minArtist = available - 8
	}

	artistSpace := minArtist
	if len(artist) < artistSpace {
		artistSpace = len(artist)
	}
	titleSpace := available - artistSpace

	return truncate(title, titleSpace), truncate(artist, artistSpace)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
