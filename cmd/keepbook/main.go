package main

import (
	"os"

	"github.com/keepbook-dev/keepbook/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
