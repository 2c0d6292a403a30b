package main

import (
	"os"

	"github.com/idilsaglam/roomtodo/internal/cli"
	"github.com/idilsaglam/roomtodo/internal/ui"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
	}
	os.Exit(cli.ExitCode(err))
}
