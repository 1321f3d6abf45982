package main

import (
	"os"

	"github.com/synthfeed/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
