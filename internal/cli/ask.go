package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"council/internal/config"
	"council/internal/council"
	"council/internal/runner"
)

var askCommand = &Command{
	Name:    "ask",
	Summary: "Ask the council a single question",
	Usage: []string{
		"council ask [options] <question>",
		"",
		"Options:",
		"  --config <path>   config file (default council.yaml)",
		"  --ranking         use the ranking pipeline instead of a debate",
		"  --stream          sequential token streaming instead of batch-parallel",
		"  --react           surface per-model reasoning (ReAct loops)",
		"  --cycles <n>      critique/defense cycles after the initial round",
		"  --plain           line output instead of the live view",
		"  --no-color        disable colors",
	},
}

func init() {
	askCommand.Run = runAsk
}

// askFlags holds parsed ask options.
type askFlags struct {
	configPath string
	ranking    bool
	stream     bool
	react      bool
	cycles     int
	plain      bool
	noColor    bool
	question   string
}

// parseAskFlags parses ask options and the question.
func parseAskFlags(args []string, stderr io.Writer) (askFlags, bool) {
	var parsed askFlags
	fs := flag.NewFlagSet("ask", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&parsed.configPath, "config", "", "config file path")
	fs.BoolVar(&parsed.ranking, "ranking", false, "use ranking pipeline")
	fs.BoolVar(&parsed.stream, "stream", false, "sequential token streaming")
	fs.BoolVar(&parsed.react, "react", false, "enable ReAct loops")
	fs.IntVar(&parsed.cycles, "cycles", 0, "critique/defense cycles")
	fs.BoolVar(&parsed.plain, "plain", false, "plain line output")
	fs.BoolVar(&parsed.noColor, "no-color", false, "disable colors")
	if err := fs.Parse(args); err != nil {
		return parsed, false
	}
	parsed.question = strings.TrimSpace(strings.Join(fs.Args(), " "))
	return parsed, true
}

func runAsk(args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(askCommand, stdout)
		return ExitOK
	}
	parsed, ok := parseAskFlags(args, stderr)
	if !ok {
		return ExitUsage
	}
	if parsed.question == "" {
		fmt.Fprintln(stderr, "ask: a question is required")
		return ExitUsage
	}

	env := config.LoadEnv()
	cfg, err := config.Load(parsed.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}
	if parsed.cycles != 0 {
		cfg.Cycles = parsed.cycles
	}
	if cfg.Cycles < 1 {
		fmt.Fprintf(stderr, "ask: cycles must be at least 1, got %d\n", cfg.Cycles)
		return ExitUsage
	}

	run, err := runner.New(cfg, env)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := runner.Options{
		Streaming: parsed.stream,
		UseReAct:  cfg.UseReAct || parsed.react,
		Cycles:    cfg.Cycles,
	}

	var events <-chan council.Event
	if parsed.ranking {
		events, _ = run.Ranking(ctx, parsed.question, opts)
	} else {
		events, _ = run.Debate(ctx, parsed.question, opts)
	}

	outcome := present(events, presentOptions{
		stdout:     stdout,
		plain:      parsed.plain,
		noColor:    parsed.noColor,
		showTokens: parsed.stream,
	})
	if outcome.errMessage != "" {
		return ExitError
	}
	if ctx.Err() != nil {
		return ExitError
	}
	return ExitOK
}
