package main

import (
	"os"

	"github.com/bissquit/cstate/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
