package cli

import (
	"flag"
	"fmt"
	"io"

	"council/internal/config"
)

var initCommand = &Command{
	Name:    "init",
	Summary: "Write a starter council.yaml",
	Usage: []string{
		"council init [--config <path>]",
	},
}

func init() {
	initCommand.Run = runInit
}

func runInit(args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(initCommand, stdout)
		return ExitOK
	}
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	path := *configPath
	if path == "" {
		path = config.DefaultPath
	}
	if err := config.Scaffold(path); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return ExitOK
}
