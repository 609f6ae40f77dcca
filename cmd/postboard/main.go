// ABOUTME: Entry point for the postboard binary.
// ABOUTME: Executes the root Cobra command.
package main

import (
	"fmt"
	"os"

	"github.com/2389-research/postboard/internal/ui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(1)
	}
}
