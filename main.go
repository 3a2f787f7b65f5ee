package main

import (
	"os"

	"github.com/carson-networks/finance-tracker/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
