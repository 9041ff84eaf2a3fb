package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalid marks a config whose values are out of range.
var ErrInvalid = errors.New("invalid config")

// MaxIndent is the widest indent the formatter honors.
const MaxIndent = 10

// Config holds user preferences. Zero-valued fields in a file keep their
// defaults only when the key is absent.
type Config struct {
	Indent         int    `json:"indent"`
	IndentOptions  []int  `json:"indentOptions"`
	Theme          string `json:"theme"`   // "light" | "dark"
	Surface        string `json:"surface"` // "editor" | "plain"
	DownloadDir    string `json:"downloadDir"`
	DownloadName   string `json:"downloadName"`
	CopyRevertMs   int    `json:"copyRevertMs"`
	HighlightLimit int    `json:"highlightLimit"` // bytes; 0 highlights everything
}

func Default() *Config {
	return &Config{
		Indent:         2,
		IndentOptions:  []int{2, 4},
		Theme:          "light",
		Surface:        "editor",
		DownloadDir:    ".",
		DownloadName:   "formatted.json",
		CopyRevertMs:   1200,
		HighlightLimit: 1 << 20,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/jsonview/config.json or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "jsonview", "config.json"), nil
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadDefault loads the file at DefaultPath, or the defaults when there is
// no such file. The returned path is empty in the latter case.
func LoadDefault() (*Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), "", nil
	}
	c, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return c, path, nil
}

func Save(path string, c *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if err := checkIndent(c.Indent); err != nil {
		return err
	}
	if len(c.IndentOptions) == 0 {
		return fmt.Errorf("%w: indentOptions is empty", ErrInvalid)
	}
	for _, w := range c.IndentOptions {
		if err := checkIndent(w); err != nil {
			return err
		}
	}
	switch c.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("%w: theme %q (want light or dark)", ErrInvalid, c.Theme)
	}
	switch c.Surface {
	case "editor", "plain":
	default:
		return fmt.Errorf("%w: surface %q (want editor or plain)", ErrInvalid, c.Surface)
	}
	if c.DownloadName == "" {
		return fmt.Errorf("%w: downloadName is empty", ErrInvalid)
	}
	if c.CopyRevertMs <= 0 {
		return fmt.Errorf("%w: copyRevertMs must be positive", ErrInvalid)
	}
	if c.HighlightLimit < 0 {
		return fmt.Errorf("%w: highlightLimit must not be negative", ErrInvalid)
	}
	return nil
}

func checkIndent(w int) error {
	if w < 0 || w > MaxIndent {
		return fmt.Errorf("%w: indent %d outside [0, %d]", ErrInvalid, w, MaxIndent)
	}
	return nil
}
