package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the sidebar style set derived from a theme.
type styles struct {
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
	graph     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	help      lipgloss.Style
	panel     lipgloss.Style
}

var canvasStyle = lipgloss.NewStyle().Padding(1, 2)

func newStyles(t Theme) styles {
	return styles{
		header:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		running:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		recording: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444")).Blink(true),
		graph:     lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		tab:       lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		activeTab: lipgloss.NewStyle().Foreground(t.Text).Background(t.Accent).Bold(true).Padding(0, 1),
		help:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(44),
	}
}

// Separator is a muted rule of the given width.
func Separator(width int, s lipgloss.Style) string {
	if width < 8 {
		return strings.Repeat("─", max(width, 0))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Render(left + " ◆ " + right)
}
