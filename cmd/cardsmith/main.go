// Command cardsmith authors, validates and exports card-game content.
package main

import (
	"fmt"
	"os"

	"cardsmith/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
