package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/plume-player/plume/internal/tui/styles"
)

// Overlay centers content in a focused border over the full terminal area.
func Overlay(content string, width, height int) string {
	box := lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Render(box))
}

// Chooser renders a titled option list for popup selection.
func Chooser(title string, options []string, cursor int) string {
	lines := []string{styles.Title.Render(title), ""}

	if len(options) == 0 {
		lines = append(lines, styles.Muted.Render("No playlists yet (` to create one)"))
	}
	for i, opt := range options {
		if i == cursor {
			lines = append(lines, styles.Highlight.Render("▸ "+opt))
		} else {
			lines = append(lines, "  "+opt)
		}
	}

	lines = append(lines, "", styles.Dim.Render("Enter:confirm  Esc:cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
