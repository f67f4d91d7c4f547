package main

import (
	"os"

	"github.com/lvyanru/chat-history/internal/cli/commands"
)

// cobra already prints the error and a usage hint.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
