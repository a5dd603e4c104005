package cli

import (
	"flag"
	"fmt"
	"io"

	"council/internal/config"
)

var modelsCommand = &Command{
	Name:    "models",
	Summary: "Show the configured panel and chairman",
	Usage: []string{
		"council models [--config <path>]",
	},
}

func init() {
	modelsCommand.Run = runModels
}

func runModels(args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(modelsCommand, stdout)
		return ExitOK
	}
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}

	fmt.Fprintln(stdout, "Participants:")
	for _, participant := range cfg.Participants {
		fmt.Fprintf(stdout, "  %s\n", participant)
	}
	fmt.Fprintf(stdout, "Chairman: %s\n", cfg.Chairman)
	return ExitOK
}
