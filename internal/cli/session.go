package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jsonview/internal/clipboard"
	"jsonview/internal/config"
	"jsonview/internal/download"
	"jsonview/internal/tui"
	"jsonview/internal/tui/surface"
	"jsonview/internal/tui/theme"
)

type sessionOptions struct {
	indent      int
	theme       string
	plain       bool
	logFile     string
	downloadDir string
}

// attachSessionFlags makes cmd start the interactive session.
func attachSessionFlags(cmd *cobra.Command, opts Options, configPath *string) {
	var so sessionOptions
	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return errors.New("jsonview accepts at most one file path")
		}
		return nil
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		fs := cmd.Flags()
		if fs.Changed("indent") {
			cfg.Indent = so.indent
		}
		if fs.Changed("theme") {
			cfg.Theme = so.theme
		}
		if so.plain {
			cfg.Surface = string(surface.KindPlain)
		}
		if fs.Changed("download-dir") {
			cfg.DownloadDir = so.downloadDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		initial := ""
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file %q: %w", args[0], err)
			}
			if !utf8.Valid(data) {
				return fmt.Errorf("read file %q: not UTF-8 text", args[0])
			}
			initial = string(data)
		}

		logger := log.New(io.Discard, "", 0)
		if so.logFile != "" {
			f, err := tea.LogToFile(so.logFile, "jsonview")
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logger = log.Default()
		}

		tuiOpts, err := sessionFromConfig(cfg, logger)
		if err != nil {
			return err
		}
		tuiOpts.InitialText = initial
		return opts.TUIRunner(tuiOpts)
	}

	fs := cmd.Flags()
	fs.IntVar(&so.indent, "indent", 2, "indent width (0 for compact)")
	fs.StringVar(&so.theme, "theme", "light", "color theme: light or dark")
	fs.BoolVar(&so.plain, "plain", false, "use plain text fields instead of the editor")
	fs.StringVar(&so.logFile, "log-file", "", "write debug logs to this file")
	fs.StringVar(&so.downloadDir, "download-dir", ".", "directory for downloaded output")
}

// sessionFromConfig builds the controller's collaborators.
func sessionFromConfig(cfg *config.Config, logger *log.Logger) (tui.Options, error) {
	variant, err := theme.Parse(cfg.Theme)
	if err != nil {
		return tui.Options{}, err
	}
	kind, err := surface.ParseKind(cfg.Surface)
	if err != nil {
		return tui.Options{}, err
	}
	input, err := surface.New(kind, surface.Options{
		Theme:       variant,
		Placeholder: "Paste or drop JSON here…",
	})
	if err != nil {
		return tui.Options{}, err
	}
	output, err := surface.New(kind, surface.Options{
		ReadOnly:       true,
		Theme:          variant,
		HighlightLimit: cfg.HighlightLimit,
	})
	if err != nil {
		return tui.Options{}, err
	}
	return tui.Options{
		Input:           input,
		Output:          output,
		Clipboard:       clipboard.NewSystem(),
		Downloader:      download.NewDir(cfg.DownloadDir),
		IndentOptions:   cfg.IndentOptions,
		Indent:          cfg.Indent,
		Theme:           variant,
		NoColor:         theme.NoColor(false),
		DownloadName:    cfg.DownloadName,
		CopyRevertDelay: time.Duration(cfg.CopyRevertMs) * time.Millisecond,
		Logger:          logger,
	}, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}
