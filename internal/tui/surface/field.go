package surface

import "jsonview/internal/tui/theme"

// Field is the plain surface: no line numbers and no coloring.
type Field struct {
	core
}

// NewField returns a Field configured by opts.
func NewField(opts Options) *Field {
	f := &Field{core: newCore(opts, false)}
	f.ta.Prompt = ""
	f.refresh()
	return f
}

// SetTheme records v; a Field looks the same in both variants.
func (f *Field) SetTheme(v theme.Variant) { f.variant = v }
