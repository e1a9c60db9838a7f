// ABOUTME: Entry point for the academia console
// ABOUTME: Command-line and terminal UI client for the Academia backend

package main

import (
	"fmt"
	"os"

	"github.com/markalston/academia-console/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
