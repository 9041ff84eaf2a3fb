package tui

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/download"
	"jsonview/internal/format"
	"jsonview/internal/tui/state"
	"jsonview/internal/tui/surface"
	"jsonview/internal/tui/theme"
	"jsonview/internal/tui/widgets/actionchips"
	"jsonview/internal/tui/widgets/helpoverlay"
	"jsonview/internal/tui/widgets/statusbar"
)

// DefaultCopyRevertDelay is how long the copy confirmation stays up.
const DefaultCopyRevertDelay = 1200 * time.Millisecond

// Clipboard receives copied output.
type Clipboard interface {
	WriteText(text string) error
}

// Downloader stores output under a suggested name and returns where it went.
type Downloader interface {
	Save(name, mimeType string, data []byte) (string, error)
}

// MissingElementError is returned by New when a required collaborator is
// absent.
type MissingElementError struct {
	Name string
}

func (e *MissingElementError) Error() string {
	return "missing required element: " + e.Name
}

// Options wire the controller to its surroundings. Input, Output,
// Clipboard, Downloader and IndentOptions are required.
type Options struct {
	Input      surface.Surface
	Output     surface.Surface
	Clipboard  Clipboard
	Downloader Downloader

	IndentOptions []int
	Indent        int

	Theme           theme.Variant
	NoColor         bool
	DownloadName    string
	CopyRevertDelay time.Duration
	Logger          *log.Logger
	// InitialText is loaded into the input before the first frame.
	InitialText string
}

// copyDoneMsg carries the text that was written so results for
// superseded output can be told apart.
type copyDoneMsg struct {
	text string
	err  error
}

type revertMsg struct{ handle state.TimerHandle }

type savedMsg struct {
	path string
	err  error
}

// Model is the session controller: it keeps the input, output, status line
// and actions consistent with the latest formatting outcome.
type Model struct {
	input  surface.Surface
	output surface.Surface
	clip   Clipboard
	saver  Downloader

	indents      []int
	downloadName string
	revertDelay  time.Duration
	log          *log.Logger

	state   state.UIState
	keys    keyMap
	variant theme.Variant
	noColor bool

	status statusbar.StatusBar
	help   helpoverlay.HelpOverlay

	// dropSeq counts dropped files.
	dropSeq int

	showHelp      bool
	width, height int
}

// New validates opts and returns a ready controller. It formats
// opts.InitialText, if any, before returning.
func New(opts Options) (*Model, error) {
	switch {
	case opts.Input == nil:
		return nil, &MissingElementError{Name: "input"}
	case opts.Output == nil:
		return nil, &MissingElementError{Name: "output"}
	case opts.Clipboard == nil:
		return nil, &MissingElementError{Name: "clipboard"}
	case opts.Downloader == nil:
		return nil, &MissingElementError{Name: "downloader"}
	case len(opts.IndentOptions) == 0:
		return nil, &MissingElementError{Name: "indent options"}
	}

	indents := append([]int(nil), opts.IndentOptions...)
	if !containsInt(indents, opts.Indent) {
		indents = append(indents, opts.Indent)
	}
	sort.Ints(indents)

	m := &Model{
		input:        opts.Input,
		output:       opts.Output,
		clip:         opts.Clipboard,
		saver:        opts.Downloader,
		indents:      indents,
		downloadName: opts.DownloadName,
		revertDelay:  opts.CopyRevertDelay,
		log:          opts.Logger,
		state:        state.New(opts.Indent),
		keys:         newKeyMap(),
		variant:      opts.Theme,
		noColor:      opts.NoColor,
		width:        80,
		height:       24,
	}
	if m.downloadName == "" {
		m.downloadName = "formatted.json"
	}
	if m.revertDelay <= 0 {
		m.revertDelay = DefaultCopyRevertDelay
	}
	if m.log == nil {
		m.log = log.New(io.Discard, "", 0)
	}
	if m.variant == "" {
		m.variant = theme.Light
	}
	if ro, ok := m.output.(surface.ReadOnlySetter); ok {
		ro.SetReadOnly(true)
	}
	m.applyTheme()
	m.syncKeys()

	m.input.OnChange(m.inputChanged)
	m.input.SetText(opts.InitialText)
	m.layout()
	return m, nil
}

// Run starts the full-screen program and blocks until the user quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// State returns a snapshot of the status, hint and session.
func (m *Model) State() state.UIState { return m.state }

// Theme returns the active variant.
func (m *Model) Theme() theme.Variant { return m.variant }

func (m *Model) Init() tea.Cmd { return m.input.Focus() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case copyDoneMsg:
		if msg.text != m.state.Session.LastFormatted {
			m.log.Printf("copy: result for stale output ignored")
			return m, nil
		}
		var h state.TimerHandle
		if msg.err != nil {
			m.log.Printf("copy: %v", msg.err)
			m.state, h = state.ShowTransient(m.state, "Copy failed: "+msg.err.Error(), state.StatusError)
		} else {
			m.log.Printf("copy: %d bytes", len(msg.text))
			m.state, h = state.ShowTransient(m.state, state.CopiedMessage, state.StatusDefault)
		}
		return m, tea.Tick(m.revertDelay, func(time.Time) tea.Msg { return revertMsg{handle: h} })

	case revertMsg:
		m.state = state.Revert(m.state, msg.handle)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.log.Printf("download: %v", msg.err)
			m.state = state.SetHint(m.state, "Download failed: "+msg.err.Error())
		} else {
			m.log.Printf("download: saved %s", msg.path)
			m.state = state.SetHint(m.state, "Saved to "+msg.path)
		}
		return m, nil

	case fileLoadedMsg:
		if msg.seq != m.dropSeq {
			return m, nil
		}
		if msg.err != nil {
			m.log.Printf("drop: %v", msg.err)
			var h state.TimerHandle
			m.state, h = state.ShowTransient(m.state, "Cannot load dropped file: "+msg.err.Error(), state.StatusError)
			return m, tea.Tick(m.revertDelay, func(time.Time) tea.Msg { return revertMsg{handle: h} })
		}
		m.log.Printf("drop: loaded %s (%d bytes)", msg.path, len(msg.text))
		m.input.SetText(msg.text)
		return m, nil
	}
	return m, m.input.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Paste {
		if path, ok := droppedFile(string(msg.Runes)); ok {
			m.dropSeq++
			m.log.Printf("drop: reading %s", path)
			return readDropped(m.dropSeq, path)
		}
		if p, ok := m.input.(surface.Paster); ok {
			p.Paste(string(msg.Runes))
			return nil
		}
		return m.input.Update(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.showHelp && msg.String() == "esc" {
			m.showHelp = false
			return m.input.Focus()
		}
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.input.Blur()
			return nil
		}
		return m.input.Focus()
	case key.Matches(msg, m.keys.Reformat):
		m.inputChanged()
		return nil
	case key.Matches(msg, m.keys.Clear):
		return m.clear()
	case key.Matches(msg, m.keys.Indent):
		m.cycleIndent()
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyCmd()
	case key.Matches(msg, m.keys.Download):
		return m.downloadCmd()
	case key.Matches(msg, m.keys.Theme):
		m.variant = m.variant.Toggle()
		m.applyTheme()
		return nil
	case key.Matches(msg, m.keys.Scroll):
		return m.output.Update(msg)
	}
	return m.input.Update(msg)
}

// inputChanged runs the formatter on the current input and updates every
// dependent piece of the view.
func (m *Model) inputChanged() {
	m.state = state.CancelTransient(m.state)
	raw := m.input.Text()
	if strings.TrimSpace(raw) == "" {
		m.state = state.Waiting(m.state)
		m.output.SetText("")
		m.syncKeys()
		return
	}
	out := format.Format(raw, format.Options{Indent: m.state.Session.Indent})
	m.state = state.ApplyOutcome(m.state, out)
	m.output.SetText(out.Formatted)
	m.syncKeys()
	m.log.Printf("format: indent=%d ok=%t %s", m.state.Session.Indent, out.OK(), out.Stats.Summary())
}

// SetIndent changes the indent width and re-formats.
func (m *Model) SetIndent(width int) {
	m.state = state.SetIndent(m.state, width)
	m.inputChanged()
}

func (m *Model) cycleIndent() {
	next := m.indents[0]
	for i, w := range m.indents {
		if w == m.state.Session.Indent && i+1 < len(m.indents) {
			next = m.indents[i+1]
			break
		}
	}
	m.SetIndent(next)
}

func (m *Model) clear() tea.Cmd {
	m.input.SetText("")
	m.output.SetText("")
	m.state = state.Clear(m.state)
	m.syncKeys()
	return m.input.Focus()
}

func (m *Model) copyCmd() tea.Cmd {
	text := m.state.Session.LastFormatted
	if text == "" {
		return nil
	}
	clip := m.clip
	return func() tea.Msg {
		return copyDoneMsg{text: text, err: clip.WriteText(text)}
	}
}

func (m *Model) downloadCmd() tea.Cmd {
	text := m.state.Session.LastFormatted
	if text == "" {
		return nil
	}
	name, saver := m.downloadName, m.saver
	return func() tea.Msg {
		path, err := saver.Save(name, download.MIMEJSON, []byte(text))
		return savedMsg{path: path, err: err}
	}
}

func (m *Model) syncKeys() {
	m.keys.setExport(m.state.CanExport())
}

func (m *Model) applyTheme() {
	theme.Apply(m.variant)
	for _, s := range []surface.Surface{m.input, m.output} {
		if t, ok := s.(surface.Themer); ok {
			t.SetTheme(m.variant)
		}
	}
	p := theme.PaletteFor(m.variant)
	m.status = statusbar.NewStatusBar(p, m.noColor)
	m.help = helpoverlay.NewHelpOverlay(p, m.noColor)
}

// chrome is the number of rows outside the panes: header, hint, status
// and the help row.
const chrome = 4

func (m *Model) sideBySide() bool { return m.width >= 100 }

func (m *Model) layout() {
	// each pane has a one-cell border on every side and a title row
	if m.sideBySide() {
		w := m.width/2 - 2
		h := m.height - chrome - 3
		m.input.SetSize(w, h)
		m.output.SetSize(w, h)
		return
	}
	w := m.width - 2
	h := (m.height-chrome)/2 - 3
	m.input.SetSize(w, h)
	m.output.SetSize(w, h)
}

func (m *Model) View() string {
	p := theme.PaletteFor(m.variant)
	title := lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Render("jsonview")
	header := title + "  " + actionchips.View(m.chips(), p, m.noColor)

	body := m.panes(p)
	if m.showHelp {
		body = m.help.Full(m.keys, m.width)
	}
	hint := lipgloss.NewStyle().Foreground(p.Muted).Italic(true).Render(m.state.Hint)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		hint,
		m.status.View(m.state),
		m.help.Short(m.keys, m.width),
	)
}

func (m *Model) chips() []actionchips.Chip {
	canExport := m.state.CanExport()
	return []actionchips.Chip{
		{Key: "^Y", Label: "Copy", Enabled: canExport},
		{Key: "^S", Label: "Download", Enabled: canExport},
		{Key: "^N", Label: fmt.Sprintf("Indent %d", m.state.Session.Indent), Enabled: true},
		{Key: "^T", Label: "Theme " + string(m.variant), Enabled: true},
	}
}

func (m *Model) panes(p theme.Palette) string {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Muted)
	label := lipgloss.NewStyle().Bold(true)
	in := box.Render(label.Render("Input") + "\n" + m.input.View())
	out := box.Render(label.Render("Output") + "\n" + m.output.View())
	if m.sideBySide() {
		return lipgloss.JoinHorizontal(lipgloss.Top, in, out)
	}
	return lipgloss.JoinVertical(lipgloss.Left, in, out)
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
