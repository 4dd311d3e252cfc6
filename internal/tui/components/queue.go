package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/plume-player/plume/internal/core"
	"github.com/plume-player/plume/internal/tui/styles"
)

// Queue displays the auto-play sequence with the current track highlighted.
type Queue struct{}

// NewQueue creates a new Queue component
func NewQueue() *Queue {
	return &Queue{}
}

// Render renders the queue panel
func (q *Queue) Render(queue *core.Queue, width, height int, focused bool) string {
	title := styles.PanelTitle("Up Next", focused)

	var content string
	if !queue.Engaged() {
		content = styles.Muted.Render("Auto-play not engaged")
	} else {
		content = q.renderQueue(queue, width-4, height-4)
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

func (q *Queue) renderQueue(queue *core.Queue, width, maxLines int) string {
	tracks := queue.Tracks

	// Show from the current track onward.
	start := queue.CurrentIndex
	end := start + maxLines - 1
	if end > len(tracks) {
		end = len(tracks)
	}

	// Fixed overhead: "XX. " (4) + "▶ " or "  " (2) + " — " (3)
	const overhead = 9

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		track := tracks[i]
		num := fmt.Sprintf("%2d.", i+1)
		title, artist := fitTitleArtist(track.Title, track.ArtistLine(), width-overhead)

		var line string
		if i == queue.CurrentIndex {
			line = styles.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", num, title, artist))
		} else {
			line = fmt.Sprintf("%s   %s — %s",
				styles.Dim.Render(num),
				title,
				styles.Muted.Render(artist))
		}
		lines = append(lines, line)
	}

	if end < len(tracks) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
