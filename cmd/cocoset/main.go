package main

import (
	"os"

	"cocoset/cmd/cocoset/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
