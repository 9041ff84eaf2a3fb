package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Reformat key.Binding
	Clear    key.Binding
	Indent   key.Binding
	Copy     key.Binding
	Download key.Binding
	Theme    key.Binding
	Scroll   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		// Most terminals send ctrl+enter as a plain enter, so the
		// reformat shortcut lives on alt+enter with ctrl+r as a fallback.
		Reformat: key.NewBinding(key.WithKeys("alt+enter", "ctrl+r"), key.WithHelp("alt+enter", "reformat")),
		Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Indent:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "indent")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Download: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "download")),
		Theme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll output")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// setExport enables or disables the bindings that need formatted output.
func (k *keyMap) setExport(enabled bool) {
	k.Copy.SetEnabled(enabled)
	k.Download.SetEnabled(enabled)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reformat, k.Copy, k.Download, k.Clear, k.Indent, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reformat, k.Clear, k.Indent},
		{k.Copy, k.Download, k.Scroll},
		{k.Theme, k.Help, k.Quit},
	}
}
