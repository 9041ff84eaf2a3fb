package tui

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

var errNotText = errors.New("not a UTF-8 text file")

// fileLoadedMsg carries the result of reading a dropped file. seq ties it to
// the drop that started it so only the latest read is applied.
type fileLoadedMsg struct {
	seq  int
	path string
	text string
	err  error
}

// droppedFile reports whether pasted content is the path of a regular file.
// Terminals deliver a drag-and-drop as a paste of the quoted or escaped path.
func droppedFile(pasted string) (string, bool) {
	p := strings.TrimSpace(pasted)
	if p == "" || strings.ContainsAny(p, "\n\r") {
		return "", false
	}
	if len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}
	if strings.HasPrefix(p, "file://") {
		u, err := url.Parse(p)
		if err != nil {
			return "", false
		}
		p = u.Path
	} else {
		p = unescapeShell(p)
	}
	p = expandPath(p)
	fi, err := os.Stat(p)
	if err != nil || !fi.Mode().IsRegular() {
		return "", false
	}
	return p, true
}

// unescapeShell drops the backslashes terminals put before spaces and
// other special characters in a dropped path.
func unescapeShell(p string) string {
	if !strings.Contains(p, `\`) || filepath.Separator == '\\' {
		return p
	}
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		if p[i] == '\\' && i+1 < len(p) {
			i++
		}
		b.WriteByte(p[i])
	}
	return b.String()
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, strings.TrimPrefix(p[1:], "/"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

func readDropped(seq int, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return fileLoadedMsg{seq: seq, path: path, err: err}
		}
		if !utf8.Valid(data) {
			return fileLoadedMsg{seq: seq, path: path, err: fmt.Errorf("%s: %w", filepath.Base(path), errNotText)}
		}
		return fileLoadedMsg{seq: seq, path: path, text: string(data)}
	}
}
