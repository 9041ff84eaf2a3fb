// Package surface provides the text areas the controller reads input from
// and writes output to. Two interchangeable variants exist: the rich Editor
// and the plain Field. Which one is used is decided once at startup.
package surface

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"jsonview/internal/tui/theme"
)

// Surface is an editable or read-only text display.
type Surface interface {
	Text() string
	// SetText replaces the content. It is a no-op when text is unchanged;
	// otherwise change listeners fire.
	SetText(text string)
	Focus() tea.Cmd
	Blur()
	// OnChange registers fn to run after each edit or programmatic set.
	OnChange(fn func())
	SetSize(width, height int)
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// ReadOnlySetter is implemented by surfaces that can refuse edits.
type ReadOnlySetter interface {
	SetReadOnly(readOnly bool)
}

// Themer is implemented by surfaces with light and dark looks.
type Themer interface {
	SetTheme(v theme.Variant)
}

// Kind selects a Surface implementation.
type Kind string

const (
	KindEditor Kind = "editor"
	KindPlain  Kind = "plain"
)

// ParseKind accepts "editor" or "plain".
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindEditor:
		return KindEditor, nil
	case KindPlain:
		return KindPlain, nil
	}
	return "", fmt.Errorf("unknown surface %q (want editor or plain)", s)
}

// Options configure a new surface.
type Options struct {
	ReadOnly    bool
	Theme       theme.Variant
	Placeholder string
	// HighlightLimit is the largest text, in bytes, the Editor colors.
	// Zero colors everything.
	HighlightLimit int
}

// New builds a surface of the given kind.
func New(k Kind, opts Options) (Surface, error) {
	switch k {
	case KindEditor:
		return NewEditor(opts), nil
	case KindPlain:
		return NewField(opts), nil
	}
	return nil, fmt.Errorf("unknown surface kind %q", k)
}

// EditLimit is the most lines the textarea holds. Longer text is shown
// read-only.
const EditLimit = 10000

// LockedNotice heads an editable surface whose text cannot be edited in
// place without altering it.
const LockedNotice = "Read-only: too long or contains tabs/control characters to edit here (ctrl+l clears)"

// Paster is implemented by surfaces that take pasted text verbatim.
type Paster interface {
	Paste(text string)
}

// core is the state both variants share: a textarea for editing and a
// viewport for read-only display. text is always the exact content; the
// textarea mirrors it only while it can do so without rewriting it.
type core struct {
	ta        textarea.Model
	vp        viewport.Model
	text      string
	readOnly  bool
	locked    bool
	variant   theme.Variant
	listeners []func()
	render    func(string) string

	width, height int
}

func newCore(opts Options, lineNumbers bool) core {
	ta := textarea.New()
	ta.ShowLineNumbers = lineNumbers
	ta.CharLimit = 0
	// MaxHeight also sizes the line-number gutter.
	ta.MaxHeight = EditLimit
	ta.MaxWidth = 0
	ta.Placeholder = opts.Placeholder
	variant := opts.Theme
	if variant == "" {
		variant = theme.Light
	}
	return core{
		ta:       ta,
		vp:       viewport.New(40, 6),
		readOnly: opts.ReadOnly,
		variant:  variant,
		width:    40,
		height:   6,
	}
}

// Editable reports whether keystrokes edit the text.
func (c *core) Editable() bool { return !c.readOnly && !c.locked }

func (c *core) Text() string { return c.text }

func (c *core) SetText(text string) {
	if text == c.text {
		return
	}
	c.text = text
	c.sync()
	c.changed()
}

// Paste inserts text verbatim at the cursor, or at the end when the
// textarea is not in use.
func (c *core) Paste(text string) {
	if c.readOnly || text == "" {
		return
	}
	if c.locked {
		c.SetText(c.text + text)
		return
	}
	if fitsTextarea(text) && lineCount(c.text)+lineCount(text)-1 <= EditLimit {
		c.ta.InsertString(text)
		c.text = c.ta.Value()
		c.changed()
		return
	}
	at := c.cursorOffset()
	c.SetText(c.text[:at] + text + c.text[at:])
}

// cursorOffset is the byte offset of the textarea cursor within text.
func (c *core) cursorOffset() int {
	row := c.ta.Line()
	info := c.ta.LineInfo()
	col := info.StartColumn + info.ColumnOffset
	off := 0
	for i := 0; i < row; i++ {
		nl := strings.IndexByte(c.text[off:], '\n')
		if nl < 0 {
			return len(c.text)
		}
		off += nl + 1
	}
	for i := range c.text[off:] {
		if col == 0 || c.text[off+i] == '\n' {
			return off + i
		}
		col--
	}
	return len(c.text)
}

func (c *core) Focus() tea.Cmd {
	if !c.Editable() {
		return nil
	}
	return c.ta.Focus()
}

func (c *core) Blur() { c.ta.Blur() }

func (c *core) OnChange(fn func()) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

func (c *core) SetReadOnly(readOnly bool) {
	if readOnly == c.readOnly {
		return
	}
	c.readOnly = readOnly
	c.sync()
}

func (c *core) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width, c.height = width, height
	c.ta.SetWidth(width)
	c.ta.SetHeight(height)
	c.sizeViewport()
}

func (c *core) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	key, isKey := msg.(tea.KeyMsg)
	if isKey && key.Paste {
		c.Paste(string(key.Runes))
		return nil
	}
	if !c.Editable() {
		c.vp, cmd = c.vp.Update(msg)
		return cmd
	}
	if !isKey {
		c.ta, cmd = c.ta.Update(msg)
		return cmd
	}
	c.ta, cmd = c.ta.Update(key)
	if v := c.ta.Value(); v != c.text {
		c.text = v
		c.changed()
	}
	return cmd
}

func (c *core) View() string {
	switch {
	case c.readOnly:
		return c.vp.View()
	case c.locked:
		return LockedNotice + "\n" + c.vp.View()
	}
	return c.ta.View()
}

func (c *core) changed() {
	for _, fn := range c.listeners {
		fn()
	}
}

// sync decides how text is shown and brings the widget holding it up to
// date.
func (c *core) sync() {
	c.locked = !c.readOnly && !fitsTextarea(c.text)
	if c.Editable() {
		if c.ta.Value() != c.text {
			c.ta.SetValue(c.text)
		}
		return
	}
	c.ta.Blur()
	c.sizeViewport()
	c.refresh()
}

func (c *core) sizeViewport() {
	c.vp.Width = c.width
	c.vp.Height = c.height
	if c.locked && c.height > 1 {
		c.vp.Height = c.height - 1
	}
}

func (c *core) refresh() {
	content := c.text
	if c.render != nil {
		content = c.render(c.text)
	}
	c.vp.SetContent(content)
	c.vp.GotoTop()
}

// fitsTextarea reports whether the textarea can hold text unchanged: it
// caps the line count and rewrites tabs, carriage returns, other control
// characters and invalid UTF-8.
func fitsTextarea(text string) bool {
	if lineCount(text) > EditLimit {
		return false
	}
	for _, r := range text {
		if r == '\n' {
			continue
		}
		if r == utf8.RuneError || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func lineCount(s string) int { return strings.Count(s, "\n") + 1 }
