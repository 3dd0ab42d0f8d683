package main

import (
	"os"

	"github.com/Makepad-fr/pizza/internal/cli"
	"github.com/Makepad-fr/pizza/internal/config"
	"github.com/Makepad-fr/pizza/internal/ui"
)

func main() {
	// Flags and env first; whatever is left is the subcommand.
	cfg, args, err := config.New(os.Args[1:])
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}
	os.Exit(cli.Run(args, cfg))
}
