// ABOUTME: Entry point for the sdcch-dim CLI
// ABOUTME: Command-line and terminal UI front end for SDCCH dimensioning

package main

import (
	"fmt"
	"os"

	"github.com/ubaidashraf22/RF/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
