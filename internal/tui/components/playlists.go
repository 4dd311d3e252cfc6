package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/plume-player/plume/internal/provider"
	"github.com/plume-player/plume/internal/tui/styles"
)

// Playlists displays playlist names, either the user's local playlists or
// remote playlists found via search.
type Playlists struct{}

// NewPlaylists creates a new Playlists component
func NewPlaylists() *Playlists {
	return &Playlists{}
}

// Render renders a list of local playlist names
func (p *Playlists) Render(names []string, cursor, width, height int, focused bool) string {
	title := styles.PanelTitle("Playlists", focused)

	var content string
	if len(names) == 0 {
		content = styles.Muted.Render("No playlists yet (` to create one)")
	} else {
		content = p.renderNames(names, cursor, width-4, height-4, focused)
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

// RenderRefs renders remote playlist search results
func (p *Playlists) RenderRefs(refs []provider.PlaylistRef, cursor, width, height int, focused bool) string {
	title := styles.PanelTitle("Playlists", focused)

	var content string
	if len(refs) == 0 {
		content = styles.Muted.Render("No playlists found")
	} else {
		lines := make([]string, 0, len(refs))
		for i, ref := range refs {
			if i >= height-4 {
				break
			}
			selector := "  "
			name := truncate(ref.Title, width-20)
			count := ""
			if ref.TrackCount > 0 {
				count = styles.Dim.Render(fmt.Sprintf(" (%d tracks)", ref.TrackCount))
			}
			if focused && i == cursor {
				selector = "▸ "
				name = styles.Highlight.Render(name)
			}
			lines = append(lines, selector+name+count)
		}
		content = lipgloss.JoinVertical(lipgloss.Left, lines...)
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

func (p *Playlists) renderNames(names []string, cursor, width, maxLines int, focused bool) string {
	if cursor >= len(names) {
		cursor = len(names) - 1
	}
	if cursor < 0 {
		cursor = 0
	}

	lines := make([]string, 0, len(names))
	for i, name := range names {
		if i >= maxLines {
			break
		}

		selector := "  "
		display := truncate(name, width-4)
		if focused && i == cursor {
			selector = "▸ "
			display = styles.Highlight.Render(display)
		}
		lines = append(lines, selector+display)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
