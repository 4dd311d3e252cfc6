package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/plume-player/plume/internal/core"
	"github.com/plume-player/plume/internal/tui/styles"
)

// History displays recently played tracks, most recent first.
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(entries []core.HistoryEntry, cursor, width, height int, focused bool) string {
	title := styles.PanelTitle("History", focused)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No history yet")
	} else {
		content = h.renderHistory(entries, cursor, width-4, height-4, focused)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (h *History) renderHistory(entries []core.HistoryEntry, cursor, width, maxLines int, focused bool) string {
	if cursor >= len(entries) {
		cursor = len(entries) - 1
	}
	if cursor < 0 {
		cursor = 0
	}

	start := 0
	if cursor >= maxLines {
		start = cursor - maxLines + 1
	}
	end := start + maxLines
	if end > len(entries) {
		end = len(entries)
	}

	// Fixed overhead: selector (2) + " — " (3) + padding for time (8)
	const overhead = 13

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		entry := entries[i]
		timeAgo := formatTimeAgo(entry.PlayedAt)

		available := width - overhead - len(timeAgo)
		title, artist := fitTitleArtist(entry.Track.Title, entry.Track.ArtistLine(), available)

		selector := "  "
		trackInfo := fmt.Sprintf("%s — %s", title, artist)
		if focused && i == cursor {
			selector = "▸ "
			trackInfo = styles.Highlight.Render(trackInfo)
		}

		padding := width - 2 - len(title) - 3 - len(artist) - len(timeAgo)
		if padding < 1 {
			padding = 1
		}

		line := fmt.Sprintf("%s%s%s%s",
			selector,
			trackInfo,
			lipgloss.NewStyle().Width(padding).Render(""),
			styles.Dim.Render(timeAgo))
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return t.Format("Jan 2")
}
