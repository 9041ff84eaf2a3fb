package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jsonview/internal/diff"
	"jsonview/internal/format"
	"jsonview/internal/tui/theme"
)

type fmtOptions struct {
	indent  int
	write   bool
	diff    bool
	stats   bool
	noColor bool
}

func newFmtCmd(opts Options, configPath *string) *cobra.Command {
	fmtOpts := fmtOptions{indent: format.DefaultIndent}
	cmd := &cobra.Command{
		Use:   "fmt [file|-]",
		Short: "Format a JSON document to stdout",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("fmt accepts at most one file path")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = strings.TrimSpace(args[0])
				if path == "" {
					path = "-"
				}
			}
			if fmtOpts.write && fmtOpts.diff {
				return errors.New("--write and --diff cannot be combined")
			}
			indent := fmtOpts.indent
			if !cmd.Flags().Changed("indent") {
				cfg, err := loadConfig(*configPath)
				if err != nil {
					return err
				}
				indent = cfg.Indent
			}

			src, err := readSource(path, opts.Stdin)
			if err != nil {
				return err
			}
			out := format.Format(string(src), format.Options{Indent: indent})
			if fmtOpts.stats {
				fmt.Fprintln(opts.Stderr, out.Stats.Summary())
			}
			if !out.OK() {
				return fmt.Errorf("%s: %w", displayName(path), out.Err)
			}
			formatted := out.Formatted
			if formatted != "" {
				formatted += "\n"
			}

			switch {
			case fmtOpts.diff:
				_, err = io.WriteString(opts.Stdout, diff.Unified(string(src), formatted, diff.Options{
					FromName: displayName(path),
					ToName:   displayName(path) + " (formatted)",
					NoColor:  theme.NoColor(fmtOpts.noColor),
				}))
				return err
			case fmtOpts.write:
				return writeFormatted(path, src, formatted)
			}
			_, err = io.WriteString(opts.Stdout, formatted)
			return err
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&fmtOpts.indent, "indent", format.DefaultIndent, "indent width (0 for compact)")
	fs.BoolVarP(&fmtOpts.write, "write", "w", false, "write result back to file")
	fs.BoolVarP(&fmtOpts.diff, "diff", "d", false, "show a diff instead of the formatted document")
	fs.BoolVar(&fmtOpts.stats, "stats", false, "print size and timing to stderr")
	fs.BoolVar(&fmtOpts.noColor, "no-color", false, "disable colored diff output")
	return cmd
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

func readSource(path string, in io.Reader) ([]byte, error) {
	if path == "-" {
		src, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", path, err)
	}
	return src, nil
}

func writeFormatted(path string, src []byte, formatted string) error {
	if path == "-" {
		return errors.New("--write requires a file path")
	}
	if formatted == string(src) {
		return nil
	}
	mode := os.FileMode(0o644)
	if st, statErr := os.Stat(path); statErr == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(formatted), mode); err != nil {
		return fmt.Errorf("write file %q: %w", path, err)
	}
	return nil
}
