// Package highlight colors JSON text token by token without touching its
// layout: whitespace and line breaks pass through unchanged.
package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/tui/theme"
)

// Styles maps each token role to a style.
type Styles struct {
	Key    lipgloss.Style
	String lipgloss.Style
	Number lipgloss.Style
	Bool   lipgloss.Style
	Null   lipgloss.Style
	Punct  lipgloss.Style
}

// StylesFor builds token styles from a palette.
func StylesFor(p theme.Palette) Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Key:    base.Foreground(p.Key).Bold(true),
		String: base.Foreground(p.String),
		Number: base.Foreground(p.Number),
		Bool:   base.Foreground(p.Bool),
		Null:   base.Foreground(p.Null).Italic(true),
		Punct:  base.Foreground(p.Punct),
	}
}

// Plain returns styles that render every token unchanged.
func Plain() Styles {
	base := lipgloss.NewStyle()
	return Styles{Key: base, String: base, Number: base, Bool: base, Null: base, Punct: base}
}

// JSON colors src. Input that is not valid JSON is still emitted in full;
// unrecognized bytes are copied through as-is.
func JSON(src string, s Styles) string {
	var b strings.Builder
	b.Grow(len(src) * 2)
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			j := i + 1
			for j < len(src) && isSpace(src[j]) {
				j++
			}
			b.WriteString(src[i:j])
			i = j
		case c == '"':
			j := scanString(src, i)
			style := s.String
			if isKey(src, j) {
				style = s.Key
			}
			b.WriteString(style.Render(src[i:j]))
			i = j
		case c == '-' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(src) && isNumberByte(src[j]) {
				j++
			}
			b.WriteString(s.Number.Render(src[i:j]))
			i = j
		case strings.HasPrefix(src[i:], "true"):
			b.WriteString(s.Bool.Render("true"))
			i += 4
		case strings.HasPrefix(src[i:], "false"):
			b.WriteString(s.Bool.Render("false"))
			i += 5
		case strings.HasPrefix(src[i:], "null"):
			b.WriteString(s.Null.Render("null"))
			i += 4
		case strings.IndexByte("{}[],:", c) >= 0:
			b.WriteString(s.Punct.Render(src[i : i+1]))
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}

// scanString returns the index just past the string starting at i. An
// unterminated string runs to the end of its line.
func scanString(src string, i int) int {
	j := i + 1
	for j < len(src) {
		switch src[j] {
		case '\\':
			j += 2
			continue
		case '"':
			return j + 1
		case '\n':
			return j
		}
		j++
	}
	return len(src)
}

func isKey(src string, j int) bool {
	for j < len(src) && isSpace(src[j]) {
		j++
	}
	return j < len(src) && src[j] == ':'
}
