package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/tui/state"
	"jsonview/internal/tui/theme"
)

type StatusBar struct {
	palette theme.Palette
	noColor bool
}

func NewStatusBar(p theme.Palette, noColor bool) StatusBar {
	return StatusBar{palette: p, noColor: noColor}
}

// View composes the status line: message first, metrics after it. Errors
// are marked so they stand out without color too.
func (b StatusBar) View(s state.UIState) string {
	msg := s.Status
	if b.noColor {
		if s.Kind == state.StatusError {
			msg = "error: " + msg
		}
		return join(msg, s.Detail)
	}
	style := lipgloss.NewStyle().Foreground(b.palette.Success)
	if s.Kind == state.StatusError {
		style = lipgloss.NewStyle().Foreground(b.palette.Danger).Bold(true)
	} else if !s.CanExport() {
		style = lipgloss.NewStyle().Foreground(b.palette.Muted)
	}
	detail := ""
	if s.Detail != "" {
		detail = lipgloss.NewStyle().Foreground(b.palette.Muted).Render(s.Detail)
	}
	return join(style.Render(msg), detail)
}

func join(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "  ·  ")
}
