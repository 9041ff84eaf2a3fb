package helpoverlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"jsonview/internal/tui/theme"
)

type keys struct {
	copy, quit key.Binding
}

func (k keys) ShortHelp() []key.Binding  { return []key.Binding{k.copy, k.quit} }
func (k keys) FullHelp() [][]key.Binding { return [][]key.Binding{{k.copy}, {k.quit}} }

func sample() keys {
	return keys{
		copy: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		quit: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
	}
}

func TestShortHidesDisabled(t *testing.T) {
	km := sample()
	km.copy.SetEnabled(false)
	out := NewHelpOverlay(theme.PaletteFor(theme.Light), true).Short(km, 80)
	if strings.Contains(out, "copy") || !strings.Contains(out, "quit") {
		t.Fatalf("unexpected short help %q", out)
	}
}

func TestFullListsBindings(t *testing.T) {
	out := NewHelpOverlay(theme.PaletteFor(theme.Dark), true).Full(sample(), 80)
	if !strings.HasPrefix(out, "Keys") || !strings.Contains(out, "ctrl+y") || !strings.Contains(out, "esc") {
		t.Fatalf("unexpected full help %q", out)
	}
}
