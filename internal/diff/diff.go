// Package diff renders a line-oriented unified diff between two texts, with
// character-level highlights on lines that were rewritten in place.
package diff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Options control rendering.
type Options struct {
	FromName string
	ToName   string
	NoColor  bool
}

type styles struct {
	delLine, addLine, delChar, addChar, same, header lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		p := lipgloss.NewStyle()
		return styles{p, p, p, p, p, p}
	}
	del := lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	add := lipgloss.AdaptiveColor{Light: "28", Dark: "114"}
	return styles{
		delLine: lipgloss.NewStyle().Foreground(del),
		addLine: lipgloss.NewStyle().Foreground(add),
		delChar: lipgloss.NewStyle().Foreground(del).Underline(true),
		addChar: lipgloss.NewStyle().Foreground(add).Underline(true),
		same:    lipgloss.NewStyle().Faint(true),
		header:  lipgloss.NewStyle().Bold(true),
	}
}

// Unified renders before against after. Identical texts yield "No changes\n".
func Unified(before, after string, opts Options) string {
	if before == after {
		return "No changes\n"
	}
	st := newStyles(opts.NoColor)
	from, to := opts.FromName, opts.ToName
	if from == "" {
		from = "before"
	}
	if to == "" {
		to = "after"
	}
	var sb strings.Builder
	sb.WriteString(st.header.Render("--- "+from) + "\n")
	sb.WriteString(st.header.Render("+++ "+to) + "\n")

	diffs := lineDiff(before, after)
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case dmp.DiffEqual:
			for _, l := range splitLines(d.Text) {
				sb.WriteString("  " + st.same.Render(l) + "\n")
			}
		case dmp.DiffDelete:
			del := splitLines(d.Text)
			if i+1 < len(diffs) && diffs[i+1].Type == dmp.DiffInsert {
				ins := splitLines(diffs[i+1].Text)
				if len(ins) == len(del) {
					for j := range del {
						writePair(&sb, st, del[j], ins[j])
					}
					i++
					continue
				}
			}
			for _, l := range del {
				sb.WriteString(st.delLine.Render("- "+l) + "\n")
			}
		case dmp.DiffInsert:
			for _, l := range splitLines(d.Text) {
				sb.WriteString(st.addLine.Render("+ "+l) + "\n")
			}
		}
	}
	return sb.String()
}

func lineDiff(before, after string) []dmp.Diff {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(terminate(before), terminate(after))
	diffs := d.DiffMain(a, b, false)
	return d.DiffCharsToLines(diffs, lines)
}

// writePair emits a rewritten line as a -/+ pair with changed runs marked.
func writePair(sb *strings.Builder, st styles, before, after string) {
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	diffs = d.DiffCleanupSemantic(diffs)
	sb.WriteString(st.delLine.Render("- "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			sb.WriteString(st.delChar.Render(df.Text))
		case dmp.DiffEqual:
			sb.WriteString(st.delLine.Render(df.Text))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(st.addLine.Render("+ "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			sb.WriteString(st.addChar.Render(df.Text))
		case dmp.DiffEqual:
			sb.WriteString(st.addLine.Render(df.Text))
		}
	}
	sb.WriteString("\n")
}

// terminate ends s with a newline so a changed last line compares cleanly.
func terminate(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
