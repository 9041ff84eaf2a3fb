package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jsonview/internal/tui/state"
	"jsonview/internal/tui/surface"
	"jsonview/internal/tui/theme"
)

type fakeSurface struct {
	text      string
	listeners []func()
	readOnly  bool
	variant   theme.Variant
	focused   bool
	updates   int
}

func (f *fakeSurface) Text() string { return f.text }
func (f *fakeSurface) SetText(s string) {
	if s == f.text {
		return
	}
	f.text = s
	for _, fn := range f.listeners {
		fn()
	}
}
func (f *fakeSurface) Focus() tea.Cmd { f.focused = true; return nil }
func (f *fakeSurface) Blur() { f.focused = false }
func (f *fakeSurface) OnChange(fn func()) { f.listeners = append(f.listeners, fn) }
func (f *fakeSurface) SetSize(int, int) {}
func (f *fakeSurface) Update(tea.Msg) tea.Cmd { f.updates++; return nil }
func (f *fakeSurface) View() string { return f.text }
func (f *fakeSurface) SetReadOnly(ro bool) { f.readOnly = ro }
func (f *fakeSurface) SetTheme(v theme.Variant) { f.variant = v }

type fakeClipboard struct {
	got []string
	err error
}

func (c *fakeClipboard) WriteText(s string) error { c.got = append(c.got, s); return c.err }

type fakeSaver struct {
	name, mime string
	data       []byte
	err        error
}

func (s *fakeSaver) Save(name, mimeType string, data []byte) (string, error) {
	s.name, s.mime, s.data = name, mimeType, data
	if s.err != nil {
		return "", s.err
	}
	return "/tmp/" + name, nil
}

type harness struct {
	m     *Model
	in    *fakeSurface
	out   *fakeSurface
	clip  *fakeClipboard
	saver *fakeSaver
}

func newHarness(t *testing.T, initial string) harness {
	t.Helper()
	h := harness{in: &fakeSurface{}, out: &fakeSurface{}, clip: &fakeClipboard{}, saver: &fakeSaver{}}
	m, err := New(Options{
		Input: h.in, Output: h.out, Clipboard: h.clip, Downloader: h.saver,
		IndentOptions: []int{2, 4}, Indent: 2,
		CopyRevertDelay: time.Millisecond,
		NoColor:         true,
		InitialText:     initial,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.m = m
	return h
}

// send delivers msg and then runs every resulting command to completion,
// feeding each produced message back in.
func (h harness) send(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	for cmd != nil {
		next := cmd()
		if next == nil {
			return
		}
		_, cmd = h.m.Update(next)
	}
}

func TestMissingElements(t *testing.T) {
	base := Options{Input: &fakeSurface{}, Output: &fakeSurface{}, Clipboard: &fakeClipboard{}, Downloader: &fakeSaver{}, IndentOptions: []int{2}}
	cases := map[string]func(o *Options){
		"input":          func(o *Options) { o.Input = nil },
		"output":         func(o *Options) { o.Output = nil },
		"clipboard":      func(o *Options) { o.Clipboard = nil },
		"downloader":     func(o *Options) { o.Downloader = nil },
		"indent options": func(o *Options) { o.IndentOptions = nil },
	}
	for name, mutate := range cases {
		o := base
		mutate(&o)
		_, err := New(o)
		var me *MissingElementError
		if !errors.As(err, &me) || me.Name != name {
			t.Fatalf("%s: expected MissingElementError, got %v", name, err)
		}
	}
	if _, err := New(base); err != nil {
		t.Fatalf("complete options should succeed: %v", err)
	}
}

func TestStartupWaiting(t *testing.T) {
	h := newHarness(t, "")
	s := h.m.State()
	if s.Status != state.WaitingMessage || s.CanExport() { t.Fatalf("expected waiting state, got %q", s.Status) }
	if !h.out.readOnly { t.Fatalf("output should be read-only") }
	if h.m.keys.Copy.Enabled() || h.m.keys.Download.Enabled() { t.Fatalf("actions should start disabled") }
}

func TestFormatsOnInput(t *testing.T) {
	h := newHarness(t, "")
	h.in.SetText(`{"foo":"bar"}`)
	if h.out.text != "{\n  \"foo\": \"bar\"\n}" { t.Fatalf("unexpected output %q", h.out.text) }
	s := h.m.State()
	if s.Status != state.SuccessMessage || s.Hint != state.HintSuccess { t.Fatalf("unexpected status %q", s.Status) }
	if !h.m.keys.Copy.Enabled() || !h.m.keys.Download.Enabled() { t.Fatalf("actions should be enabled") }
}

func TestInitialTextFormatted(t *testing.T) {
	h := newHarness(t, `[1,2]`)
	if h.out.text != "[\n  1,\n  2\n]" { t.Fatalf("initial text not formatted: %q", h.out.text) }
}

func TestMalformedInput(t *testing.T) {
	h := newHarness(t, `{"ok":1}`)
	h.in.SetText(`{"foo":}`)
	s := h.m.State()
	if h.out.text != "" || s.CanExport() { t.Fatalf("failure should clear output and disable export") }
	if s.Kind != state.StatusError || !strings.Contains(s.Status, "line 1, column 8") { t.Fatalf("unexpected status %q", s.Status) }
	if s.Detail == "" { t.Fatalf("failure should still show metrics") }
	if h.m.keys.Copy.Enabled() { t.Fatalf("copy should be disabled") }
}

func TestBlankInputWaits(t *testing.T) {
	h := newHarness(t, `[1]`)
	h.in.SetText("   \n ")
	s := h.m.State()
	if s.Status != state.WaitingMessage || h.out.text != "" || s.CanExport() { t.Fatalf("blank input should return to waiting") }
}

func TestIndentCycle(t *testing.T) {
	h := newHarness(t, `{"foo":{"deep":true}}`)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlN})
	if h.m.State().Session.Indent != 4 || !strings.Contains(h.out.text, "\n        \"deep\"") { t.Fatalf("expected indent 4 output, got %q", h.out.text) }
	h.send(tea.KeyMsg{Type: tea.KeyCtrlN})
	if h.m.State().Session.Indent != 2 { t.Fatalf("indent should wrap around") }
}

func TestCustomIndentAddedToOptions(t *testing.T) {
	m, err := New(Options{Input: &fakeSurface{}, Output: &fakeSurface{}, Clipboard: &fakeClipboard{}, Downloader: &fakeSaver{}, IndentOptions: []int{4, 2}, Indent: 3})
	if err != nil { t.Fatalf("New: %v", err) }
	if got := m.indents; len(got) != 3 || got[0] != 2 || got[1] != 3 || got[2] != 4 { t.Fatalf("unexpected options %v", got) }
}

func TestClear(t *testing.T) {
	h := newHarness(t, `{"a":1}`)
	h.in.focused = false
	h.send(tea.KeyMsg{Type: tea.KeyCtrlL})
	s := h.m.State()
	if h.in.text != "" || h.out.text != "" { t.Fatalf("clear should blank both surfaces") }
	if s.Status != state.WaitingMessage || s.CanExport() { t.Fatalf("clear should return to waiting") }
	if !h.in.focused { t.Fatalf("clear should refocus the input") }
}

func TestCopyAndRevert(t *testing.T) {
	h := newHarness(t, `{"a":1}`)
	want := h.out.text
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil { t.Fatalf("expected a copy command") }
	_, tick := h.m.Update(cmd())
	if len(h.clip.got) != 1 || h.clip.got[0] != want { t.Fatalf("clipboard got %v", h.clip.got) }
	if h.m.State().Status != state.CopiedMessage { t.Fatalf("expected copied status, got %q", h.m.State().Status) }
	detail := h.m.State().Detail
	h.m.Update(tick())
	if h.m.State().Status != state.SuccessMessage || h.m.State().Detail != detail { t.Fatalf("expected reversion, got %q", h.m.State().Status) }
}

func TestSecondCopyReplacesRevert(t *testing.T) {
	h := newHarness(t, `[1]`)
	_, first := h.m.Update(copyDoneMsg{text: h.out.text})
	_, second := h.m.Update(copyDoneMsg{text: h.out.text})
	h.m.Update(first())
	if h.m.State().Status != state.CopiedMessage { t.Fatalf("first tick must not revert a newer copy") }
	h.m.Update(second())
	if h.m.State().Status != state.SuccessMessage { t.Fatalf("second tick should revert") }
}

func TestCopyFailureIsSoft(t *testing.T) {
	h := newHarness(t, `[1]`)
	h.clip.err = errors.New("no clipboard")
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	h.m.Update(cmd())
	s := h.m.State()
	if s.Kind != state.StatusError || !strings.Contains(s.Status, "no clipboard") { t.Fatalf("unexpected status %q", s.Status) }
	if !s.CanExport() { t.Fatalf("copy failure should keep output") }
}

func TestCopyDisabledWithoutOutput(t *testing.T) {
	h := newHarness(t, "")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	if len(h.clip.got) != 0 { t.Fatalf("copy should not run without output") }
}

func TestStaleCopyIgnored(t *testing.T) {
	h := newHarness(t, `[1]`)
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	h.in.SetText(`[2]`)
	h.m.Update(cmd())
	if h.m.State().Status != state.SuccessMessage { t.Fatalf("copy of replaced output should not show, got %q", h.m.State().Status) }
}

func TestReformatKeepsPendingCopy(t *testing.T) {
	h := newHarness(t, `[1]`)
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	h.send(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	h.m.Update(cmd())
	if h.m.State().Status != state.CopiedMessage { t.Fatalf("reformat of unchanged input dropped the copy result, got %q", h.m.State().Status) }
}

func TestDownload(t *testing.T) {
	h := newHarness(t, `{"a":1}`)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if h.saver.name != "formatted.json" || h.saver.mime != "application/json" || string(h.saver.data) != h.out.text { t.Fatalf("unexpected save %q %q", h.saver.name, h.saver.mime) }
	if h.m.State().Hint != "Saved to /tmp/formatted.json" { t.Fatalf("unexpected hint %q", h.m.State().Hint) }

	h.saver.err = errors.New("disk full")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(h.m.State().Hint, "Download failed: disk full") { t.Fatalf("unexpected hint %q", h.m.State().Hint) }
}

func TestThemeToggle(t *testing.T) {
	h := newHarness(t, "")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	if h.m.Theme() != theme.Dark || h.in.variant != theme.Dark || h.out.variant != theme.Dark { t.Fatalf("theme not propagated") }
	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	if h.m.Theme() != theme.Light { t.Fatalf("theme should toggle back") }
}

func TestReformatShortcut(t *testing.T) {
	h := newHarness(t, `[1]`)
	h.out.text = "stale"
	h.send(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if h.out.text != "[\n  1\n]" { t.Fatalf("reformat did not refresh output: %q", h.out.text) }
}

func TestScrollGoesToOutput(t *testing.T) {
	h := newHarness(t, `[1]`)
	h.send(tea.KeyMsg{Type: tea.KeyPgDown})
	if h.out.updates != 1 || h.in.updates != 0 { t.Fatalf("pgdown should scroll the output only") }
}

func TestTypingGoesToInput(t *testing.T) {
	h := newHarness(t, "")
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if h.in.updates != 1 { t.Fatalf("keys should reach the input") }
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t, "")
	h.send(tea.KeyMsg{Type: tea.KeyF1})
	if !h.m.showHelp || !strings.Contains(h.m.View(), "Keys") { t.Fatalf("help should open") }
	if h.in.focused { t.Fatalf("help should take focus from the input") }
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.showHelp || cmd != nil { t.Fatalf("esc should close help without quitting") }
	if !h.in.focused { t.Fatalf("closing help should refocus the input") }
	h.send(tea.KeyMsg{Type: tea.KeyF1})
	h.send(tea.KeyMsg{Type: tea.KeyF1})
	if h.m.showHelp || !h.in.focused { t.Fatalf("f1 should close help and refocus") }
}

func TestQuit(t *testing.T) {
	h := newHarness(t, "")
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil { t.Fatalf("expected quit command") }
	if _, ok := cmd().(tea.QuitMsg); !ok { t.Fatalf("expected tea.QuitMsg") }
}

func TestDropFile(t *testing.T) {
	h := newHarness(t, "")
	path := filepath.Join(t.TempDir(), "my data.json")
	if err := os.WriteFile(path, []byte(`{"dropped":true}`), 0o644); err != nil { t.Fatalf("write: %v", err) }
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("'" + path + "'"), Paste: true})
	if h.in.text != `{"dropped":true}` || !strings.Contains(h.out.text, `"dropped": true`) { t.Fatalf("drop not loaded: %q", h.out.text) }
}

func TestDropBinaryRejected(t *testing.T) {
	h := newHarness(t, "")
	path := filepath.Join(t.TempDir(), "blob.bin")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil { t.Fatalf("write: %v", err) }
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(path), Paste: true})
	h.m.Update(cmd())
	s := h.m.State()
	if s.Kind != state.StatusError || h.in.text != "" { t.Fatalf("binary drop should be rejected, got %q", s.Status) }
}

func TestLastDropWins(t *testing.T) {
	h := newHarness(t, "")
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")
	os.WriteFile(a, []byte(`"a"`), 0o644)
	os.WriteFile(b, []byte(`"b"`), 0o644)
	_, first := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(a), Paste: true})
	_, second := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(b), Paste: true})
	h.m.Update(second())
	h.m.Update(first())
	if h.in.text != `"b"` { t.Fatalf("expected last drop to win, got %q", h.in.text) }
}

func TestPasteOfJSONIsNotADrop(t *testing.T) {
	h := newHarness(t, "")
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(`{"a":1}`), Paste: true})
	if cmd != nil || h.in.updates != 1 { t.Fatalf("plain paste should reach the input") }
}

func TestDroppedFileParsing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a b.json")
	os.WriteFile(path, []byte("{}"), 0o644)
	for _, in := range []string{path, "'" + path + "'", `"` + path + `"`, strings.ReplaceAll(path, " ", `\ `), "file://" + strings.ReplaceAll(path, " ", "%20")} {
		got, ok := droppedFile(in + "\n")
		if !ok || got != path { t.Fatalf("droppedFile(%q) = %q, %v", in, got, ok) }
	}
	if _, ok := droppedFile(dir); ok { t.Fatalf("directories are not drops") }
}

func TestViewShowsStatusAndChips(t *testing.T) {
	h := newHarness(t, `[1]`)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	v := h.m.View()
	for _, want := range []string{"jsonview", "[^Y Copy]", "[^N Indent 2]", state.SuccessMessage, state.HintSuccess} {
		if !strings.Contains(v, want) { t.Fatalf("view missing %q:\n%s", want, v) }
	}
}

func TestRealSurfacesWire(t *testing.T) {
	in, _ := surface.New(surface.KindPlain, surface.Options{})
	out, _ := surface.New(surface.KindEditor, surface.Options{})
	m, err := New(Options{Input: in, Output: out, Clipboard: &fakeClipboard{}, Downloader: &fakeSaver{}, IndentOptions: []int{2}, Indent: 2, InitialText: `{"a":[]}`})
	if err != nil { t.Fatalf("New: %v", err) }
	if out.Text() != "{\n  \"a\": []\n}" || !m.State().CanExport() { t.Fatalf("unexpected output %q", out.Text()) }
}

func newRealModel(t *testing.T, k surface.Kind) (*Model, surface.Surface) {
	t.Helper()
	in, _ := surface.New(k, surface.Options{})
	out, _ := surface.New(surface.KindEditor, surface.Options{})
	m, err := New(Options{Input: in, Output: out, Clipboard: &fakeClipboard{}, Downloader: &fakeSaver{}, IndentOptions: []int{2}, Indent: 2})
	if err != nil { t.Fatalf("New: %v", err) }
	m.Init()
	return m, in
}

func TestLongInputFormats(t *testing.T) {
	var b strings.Builder
	b.WriteString("[\n")
	for i := 0; i < 12001; i++ {
		b.WriteString("  1,\n")
	}
	b.WriteString("  1\n]")
	raw := b.String()
	for _, k := range []surface.Kind{surface.KindEditor, surface.KindPlain} {
		m, in := newRealModel(t, k)
		in.SetText(raw)
		if in.Text() != raw { t.Fatalf("%q: input altered to %d bytes", k, len(in.Text())) }
		if s := m.State(); s.Status != state.SuccessMessage { t.Fatalf("%q: expected success, got %q %q", k, s.Status, s.Detail) }

		m, in = newRealModel(t, k)
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(raw), Paste: true})
		if in.Text() != raw || m.State().Status != state.SuccessMessage { t.Fatalf("%q: pasted input altered, status %q", k, m.State().Status) }
	}
}

func TestTabInStringIsAnError(t *testing.T) {
	raw := "{\"a\":\"x\ty\"}"
	m, in := newRealModel(t, surface.KindPlain)
	in.SetText(raw)
	if s := m.State(); s.Kind != state.StatusError || in.Text() != raw { t.Fatalf("raw tab in a string should fail, got %q", s.Status) }

	m, in = newRealModel(t, surface.KindEditor)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(raw), Paste: true})
	if s := m.State(); s.Kind != state.StatusError || in.Text() != raw { t.Fatalf("pasted tab should be kept and fail, got %q", s.Status) }
}
