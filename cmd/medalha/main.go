package main

import (
	"os"

	"github.com/dlima/medalha/cmd/medalha/commands"
)

// main is the entry point for the medalha CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
