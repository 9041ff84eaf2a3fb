package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"jsonview/internal/tui"
)

type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// TUIRunner starts the interactive session. Tests replace it.
type TUIRunner func(opts tui.Options) error

type Options struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	BuildInfo BuildInfo
	TUIRunner TUIRunner
}

func Run(args []string, opts Options) error {
	resolved := normalizeOptions(opts)
	root := newRootCmd(resolved)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	return root.Execute()
}

func normalizeOptions(opts Options) Options {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.TUIRunner == nil {
		opts.TUIRunner = tui.Run
	}
	return opts
}

func newRootCmd(opts Options) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "jsonview [file]",
		Short:         "Format and inspect JSON in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jsonview/config.json)")
	cmd.SetIn(opts.Stdin)
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	attachSessionFlags(cmd, opts, &configPath)
	cmd.AddCommand(
		newFmtCmd(opts, &configPath),
		newInitCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}
