// Command relabel translates UI labels in a source file in place.
package main

import (
	"os"

	"github.com/roach88/relabel/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands report their own errors through the output formatter.
		os.Exit(cli.GetExitCode(err))
	}
}
