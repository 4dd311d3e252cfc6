package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/plume-player/plume/internal/core"
	"github.com/plume-player/plume/internal/tui/styles"
)

// PlayerBar displays the currently playing track with transport state. It
// sits at the bottom of every mode and expands into the Player mode view.
type PlayerBar struct{}

// NewPlayerBar creates a new PlayerBar component
func NewPlayerBar() *PlayerBar {
	return &PlayerBar{}
}

// Render renders the player panel
func (p *PlayerBar) Render(state core.PlaybackState, width, height int, focused bool) string {
	title := styles.PanelTitle("Player", focused)

	var content string
	if !state.HasTrack() {
		content = styles.Muted.Render("Nothing playing")
	} else {
		content = p.renderTrack(state, width-4)
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

func (p *PlayerBar) renderTrack(state core.PlaybackState, width int) string {
	track := state.Track

	icon := styles.StatusIcon(state.Paused)
	title := styles.Title.Render(truncate(track.Title, width-4))
	artist := styles.Subtitle.Render(truncate(track.ArtistLine(), width-4))

	// Progress bar with times on either side
	progressWidth := width - 16
	if progressWidth < 10 {
		progressWidth = 10
	}
	progress := fmt.Sprintf("%s %s %s",
		core.FormatDuration(state.Position),
		styles.ProgressBar(state.ProgressPercent(), progressWidth),
		core.FormatDuration(state.Duration))

	volume := styles.Muted.Render(fmt.Sprintf("vol %d%%", state.Volume))

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"",
		progress,
		volume,
	)
}
