package main

import (
	"os"

	"github.com/sozercan/tokenscope/cmd/tokenscope/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
