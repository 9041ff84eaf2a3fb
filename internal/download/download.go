// Package download saves formatted output as a named file.
package download

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// MIMEJSON is the media type of formatted output.
const MIMEJSON = "application/json"

// ErrUnsupportedType is returned for a media type with no known extension.
var ErrUnsupportedType = errors.New("unsupported media type")

// Dir saves into a directory, never overwriting an existing file.
type Dir struct {
	Path string
}

// NewDir returns a Dir rooted at path ("." when empty).
func NewDir(path string) *Dir {
	if path == "" {
		path = "."
	}
	return &Dir{Path: path}
}

// Save writes data as name inside d.Path. The extension is forced to match
// mimeType, and a numeric suffix is added when the name is taken.
func (d *Dir) Save(name, mimeType string, data []byte) (string, error) {
	ext, err := extensionFor(mimeType, filepath.Ext(name))
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "formatted"
	}
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return "", err
	}
	for i := 0; ; i++ {
		candidate := base + ext
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path := filepath.Join(d.Path, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", err
		}
		return path, f.Close()
	}
}

func extensionFor(mimeType, current string) (string, error) {
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}
	for _, e := range exts {
		if strings.EqualFold(e, current) || e == ".json" {
			return e, nil
		}
	}
	return exts[0], nil
}
