// Copyright
// SPDX-License-Identifier: MIT
// jsonview: paste, validate and pretty-print JSON in the terminal
package main

import (
	"fmt"
	"os"

	"jsonview/internal/cli"
)

const Version = "0.1.0"

// Set by -ldflags at release time.
var (
	commit    = ""
	buildDate = ""
)

func main() {
	err := cli.Run(os.Args[1:], cli.Options{
		BuildInfo: cli.BuildInfo{Version: Version, Commit: commit, BuildDate: buildDate},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsonview:", err)
		os.Exit(1)
	}
}
