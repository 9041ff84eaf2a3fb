// Package theme holds the light/dark variants and the colors each one uses.
package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Variant is the visual theme of the whole program.
type Variant string

const (
	Light Variant = "light"
	Dark  Variant = "dark"
)

// Parse accepts "light" or "dark" (case-insensitive).
func Parse(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Toggle returns the other variant.
func (v Variant) Toggle() Variant {
	if v == Dark {
		return Light
	}
	return Dark
}

// Apply sets the process-wide background hint so every AdaptiveColor in
// the program resolves for v. It is the only writer of that global.
func Apply(v Variant) {
	lipgloss.SetHasDarkBackground(v == Dark)
}

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette defines the colors used across widgets and JSON highlighting.
type Palette struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Danger  lipgloss.Color
	Muted   lipgloss.Color

	Key    lipgloss.Color
	String lipgloss.Color
	Number lipgloss.Color
	Bool   lipgloss.Color
	Null   lipgloss.Color
	Punct  lipgloss.Color
}

// PaletteFor returns the palette for v.
func PaletteFor(v Variant) Palette {
	if v == Dark {
		return Palette{
			Primary: lipgloss.Color("#7AA2F7"),
			Success: lipgloss.Color("#9ECE6A"),
			Danger:  lipgloss.Color("#FF9DA4"),
			Muted:   lipgloss.Color("#7285B7"),
			Key:     lipgloss.Color("#BBDAFF"),
			String:  lipgloss.Color("#D1F1A9"),
			Number:  lipgloss.Color("#FFC58F"),
			Bool:    lipgloss.Color("#FF9DA4"),
			Null:    lipgloss.Color("#7285B7"),
			Punct:   lipgloss.Color("#FFFFFF"),
		}
	}
	return Palette{
		Primary: lipgloss.Color("#3D6DFF"),
		Success: lipgloss.Color("#2AA876"),
		Danger:  lipgloss.Color("#D9534F"),
		Muted:   lipgloss.Color("#6C757D"),
		Key:     lipgloss.Color("#0550AE"),
		String:  lipgloss.Color("#0A3069"),
		Number:  lipgloss.Color("#953800"),
		Bool:    lipgloss.Color("#CF222E"),
		Null:    lipgloss.Color("#6E7781"),
		Punct:   lipgloss.Color("#24292F"),
	}
}
