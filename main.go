package main

import (
	"fmt"
	"os"

	"github.com/zoomcheck/zoomcheck/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	err := cli.Execute(version, commit, date)
	code, report := cli.ExitCode(err)
	if report {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(code)
}
