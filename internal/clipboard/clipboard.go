// Package clipboard writes text to the system clipboard, falling back to an
// OSC 52 escape sequence when no native clipboard tool is available.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when neither the native clipboard nor the
// terminal fallback could be used.
var ErrUnavailable = errors.New("clipboard unavailable")

// System writes to the native clipboard.
type System struct {
	native    func(string) error
	supported func() bool
	term      io.Writer
	getenv    func(string) string
}

// NewSystem returns a System using the native clipboard with OSC 52 output
// to stderr as the fallback.
func NewSystem() *System {
	return &System{
		native:    sysclip.WriteAll,
		supported: func() bool { return !sysclip.Unsupported },
		term:      os.Stderr,
		getenv:    os.Getenv,
	}
}

// WriteText copies text. Native failures fall through to the terminal.
func (s *System) WriteText(text string) error {
	var nativeErr error
	if s.supported() {
		if nativeErr = s.native(text); nativeErr == nil {
			return nil
		}
	}
	if s.term == nil {
		if nativeErr != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, nativeErr)
		}
		return ErrUnavailable
	}
	if _, err := s.sequence(text).WriteTo(s.term); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *System) sequence(text string) osc52.Sequence {
	seq := osc52.New(text)
	switch {
	case s.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(s.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	return seq
}
