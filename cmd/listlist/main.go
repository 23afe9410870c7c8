package main

import (
	"os"

	"github.com/idilsaglam/listlist/internal/cli"
)

func main() {
	// No subcommand opens the interactive list; see `listlist --help`.
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
