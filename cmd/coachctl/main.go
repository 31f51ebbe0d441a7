// Command coachctl is the operator CLI for the plan backend: it seeds the catalog, creates
// weeks, inspects generator output and runs generations synchronously.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
