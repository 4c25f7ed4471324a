// The main package for the pathe-monitor executable.
package main

import (
	"github.com/cinewatch/pathe-monitor/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
