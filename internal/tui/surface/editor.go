package surface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/tui/highlight"
	"jsonview/internal/tui/theme"
)

// Editor is the feature-rich surface: a line-numbered textarea when
// editable, and a highlighted, line-numbered listing when read-only.
type Editor struct {
	core
	limit int
}

// NewEditor returns an Editor configured by opts.
func NewEditor(opts Options) *Editor {
	e := &Editor{core: newCore(opts, true), limit: opts.HighlightLimit}
	e.render = e.renderListing
	e.applyTheme()
	e.refresh()
	return e
}

// SetTheme restyles the gutter and re-renders read-only content.
func (e *Editor) SetTheme(v theme.Variant) {
	if v == e.variant {
		return
	}
	e.variant = v
	e.applyTheme()
	e.refresh()
}

// Highlighted reports whether the current text is within the coloring limit.
func (e *Editor) Highlighted() bool {
	return e.limit <= 0 || len(e.Text()) <= e.limit
}

func (e *Editor) applyTheme() {
	p := theme.PaletteFor(e.variant)
	e.ta.FocusedStyle.LineNumber = lipgloss.NewStyle().Foreground(p.Muted)
	e.ta.FocusedStyle.CursorLineNumber = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	e.ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(p.Muted)
	e.ta.BlurredStyle.LineNumber = lipgloss.NewStyle().Foreground(p.Muted)
	e.ta.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(p.Muted)
}

func (e *Editor) renderListing(text string) string {
	if text == "" {
		return ""
	}
	body := text
	if e.Highlighted() {
		body = highlight.JSON(text, highlight.StylesFor(theme.PaletteFor(e.variant)))
	}
	lines := strings.Split(body, "\n")
	width := len(strconv.Itoa(len(lines)))
	gutter := lipgloss.NewStyle().Foreground(theme.PaletteFor(e.variant).Muted)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(gutter.Render(fmt.Sprintf("%*d", width, i+1)))
		b.WriteString(" ")
		b.WriteString(line)
	}
	return b.String()
}
