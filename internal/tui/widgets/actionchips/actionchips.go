package actionchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/tui/theme"
)

// Chip is one control on the toolbar. A disabled chip is drawn dimmed, or
// in parentheses without color.
type Chip struct {
	Key     string
	Label   string
	Enabled bool
}

// View renders chips in order using colored badges when possible and ASCII
// fallbacks when color is disabled.
func View(chips []Chip, p theme.Palette, noColor bool) string {
	if len(chips) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		parts = append(parts, renderChip(c, p, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(c Chip, p theme.Palette, noColor bool) string {
	label := c.Label
	if c.Key != "" {
		label = fmt.Sprintf("%s %s", c.Key, c.Label)
	}
	if noColor {
		if c.Enabled {
			return fmt.Sprintf("[%s]", label)
		}
		return fmt.Sprintf("(%s)", label)
	}
	base := lipgloss.NewStyle().Padding(0, 1)
	if !c.Enabled {
		return base.Foreground(p.Muted).Faint(true).Render(label)
	}
	return base.Bold(true).Background(p.Primary).Foreground(lipgloss.Color("#FFFFFF")).Render(label)
}
