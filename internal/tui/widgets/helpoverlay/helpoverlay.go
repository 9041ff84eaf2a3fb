package helpoverlay

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/tui/theme"
)

type HelpOverlay struct {
	model   help.Model
	palette theme.Palette
	noColor bool
}

func NewHelpOverlay(p theme.Palette, noColor bool) HelpOverlay {
	m := help.New()
	if !noColor {
		m.Styles.ShortKey = lipgloss.NewStyle().Foreground(p.Primary)
		m.Styles.FullKey = lipgloss.NewStyle().Foreground(p.Primary)
		m.Styles.ShortDesc = lipgloss.NewStyle().Foreground(p.Muted)
		m.Styles.FullDesc = lipgloss.NewStyle().Foreground(p.Muted)
	}
	return HelpOverlay{model: m, palette: p, noColor: noColor}
}

// Short renders the one-line hint row. Disabled bindings are left out.
func (h HelpOverlay) Short(km help.KeyMap, width int) string {
	h.model.Width = width
	h.model.ShowAll = false
	return h.model.View(km)
}

// Full renders every binding group inside a titled box.
func (h HelpOverlay) Full(km help.KeyMap, width int) string {
	h.model.Width = width
	h.model.ShowAll = true
	title := "Keys"
	body := h.model.View(km)
	if h.noColor {
		return title + "\n\n" + body
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.palette.Primary).
		Padding(0, 1)
	return box.Render(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + body)
}
