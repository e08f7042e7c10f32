package main

import (
	"os"

	"github.com/transcriba/transcriba/cmd/transcriba/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
