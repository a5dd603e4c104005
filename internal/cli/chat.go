package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"council/internal/config"
	"council/internal/runner"
	"council/internal/store"
)

var chatCommand = &Command{
	Name:    "chat",
	Summary: "Interactive chat with the council",
	Usage: []string{
		"council chat [options]",
		"",
		"Options:",
		"  --config <path>   config file (default council.yaml)",
		"  --ranking         start in ranking mode",
		"  --stream          sequential token streaming",
		"  --react           surface per-model reasoning",
		"",
		"Inside the chat, type /help for commands.",
	},
}

func init() {
	chatCommand.Run = runChat
}

// contextTurns is how many recent exchanges are threaded into a query,
// besides the first exchange of the conversation.
const contextTurns = 3

// chatState is the mutable REPL state.
type chatState struct {
	debate       bool
	cycles       int
	stream       bool
	react        bool
	conversation *store.Conversation
}

func runChat(args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(chatCommand, stdout)
		return ExitOK
	}
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file path")
	rankingMode := fs.Bool("ranking", false, "start in ranking mode")
	streamMode := fs.Bool("stream", false, "sequential token streaming")
	reactMode := fs.Bool("react", false, "enable ReAct loops")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	env := config.LoadEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}
	run, err := runner.New(cfg, env)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}
	conversations := store.New(cfg.DataDir)

	state := &chatState{
		debate:       !*rankingMode,
		cycles:       cfg.Cycles,
		stream:       *streamMode,
		react:        cfg.UseReAct || *reactMode,
		conversation: conversations.NewConversation("New Conversation"),
	}

	fmt.Fprintf(stdout, "Council chat — %s\n", modeLine(state))
	fmt.Fprintln(stdout, "Type /help for commands, /exit to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(stdout, "\ncouncil> ")
		if !scanner.Scan() {
			return ExitOK
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if name, argument, isCommand := parseChatCommand(line); isCommand {
			if !dispatchChatCommand(state, conversations, name, argument, stdout) {
				return ExitOK
			}
			continue
		}
		askCouncil(run, conversations, state, line, stdout, stderr)
	}
}

// askCouncil runs one chat turn and persists the outcome.
func askCouncil(run *runner.Runner, conversations *store.Store, state *chatState, question string, stdout, stderr io.Writer) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	query := question
	if contextBlock := buildContextPrompt(state.conversation, contextTurns); contextBlock != "" {
		query = contextBlock + "\n\nCurrent question: " + question
	}

	opts := runner.Options{Streaming: state.stream, UseReAct: state.react, Cycles: state.cycles}

	state.conversation.Turns = append(state.conversation.Turns, store.Turn{Role: "user", Content: question})

	var payload *store.CouncilPayload
	var outcome presentOutcome
	if state.debate {
		events, result := run.Debate(ctx, query, opts)
		outcome = present(events, presentOptions{stdout: stdout, showTokens: state.stream, plain: true})
		if outcome.errMessage == "" {
			payload = store.DebatePayload(*result)
		}
	} else {
		events, result := run.Ranking(ctx, query, opts)
		outcome = present(events, presentOptions{stdout: stdout, showTokens: state.stream, plain: true})
		if outcome.errMessage == "" {
			payload = store.RankingPayload(*result)
		}
	}
	if payload == nil {
		fmt.Fprintln(stderr, "The council could not answer; nothing was saved.")
		return
	}

	state.conversation.Turns = append(state.conversation.Turns, store.Turn{Role: "assistant", Council: payload})
	if state.conversation.Title == "New Conversation" {
		state.conversation.Title = run.Title(ctx, question)
	}
	if err := conversations.Save(state.conversation); err != nil {
		fmt.Fprintln(stderr, err)
	}
}

// modeLine formats the current mode for display.
func modeLine(state *chatState) string {
	mode := "Council (ranking)"
	if state.debate {
		mode = fmt.Sprintf("Debate (%d cycles)", state.cycles)
		if state.stream {
			mode += " [streaming]"
		}
	}
	if state.react {
		mode += " [react]"
	}
	return mode
}

// parseChatCommand splits "/cmd arg" input; ":" is accepted as a prefix.
func parseChatCommand(line string) (name, argument string, ok bool) {
	if !strings.HasPrefix(line, "/") && !strings.HasPrefix(line, ":") {
		return "", "", false
	}
	body := strings.TrimSpace(line[1:])
	if body == "" {
		return "", "", false
	}
	parts := strings.SplitN(body, " ", 2)
	name = strings.ToLower(parts[0])
	if len(parts) > 1 {
		argument = strings.TrimSpace(parts[1])
	}
	switch name {
	case "q", "quit":
		name = "exit"
	}
	return name, argument, true
}

// dispatchChatCommand runs one slash command; false exits the REPL.
func dispatchChatCommand(state *chatState, conversations *store.Store, name, argument string, stdout io.Writer) bool {
	switch name {
	case "exit":
		fmt.Fprintln(stdout, "Exiting chat.")
		return false
	case "help":
		printChatHelp(stdout)
	case "mode":
		fmt.Fprintln(stdout, modeLine(state))
	case "debate":
		state.debate = toggle(argument, state.debate)
		fmt.Fprintln(stdout, modeLine(state))
	case "stream":
		state.stream = toggle(argument, state.stream)
		fmt.Fprintln(stdout, modeLine(state))
	case "react":
		state.react = toggle(argument, state.react)
		fmt.Fprintln(stdout, modeLine(state))
	case "cycles":
		if n, err := strconv.Atoi(argument); err == nil && n >= 1 {
			state.cycles = n
		} else {
			fmt.Fprintln(stdout, "Usage: /cycles <n ≥ 1>")
		}
		fmt.Fprintln(stdout, modeLine(state))
	case "new":
		state.conversation = conversations.NewConversation("New Conversation")
		fmt.Fprintln(stdout, "Started a new conversation.")
	case "history":
		printHistory(conversations, stdout)
	case "use":
		useConversation(state, conversations, argument, stdout)
	default:
		fmt.Fprintf(stdout, "Unknown command: /%s (try /help)\n", name)
	}
	return true
}

// toggle interprets on/off arguments, flipping when absent.
func toggle(argument string, current bool) bool {
	switch strings.ToLower(argument) {
	case "on", "true", "yes":
		return true
	case "off", "false", "no":
		return false
	case "":
		return !current
	default:
		return current
	}
}

func printChatHelp(stdout io.Writer) {
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "  /help           show this help")
	fmt.Fprintln(stdout, "  /history        list saved conversations")
	fmt.Fprintln(stdout, "  /use <id>       resume a conversation by id prefix")
	fmt.Fprintln(stdout, "  /new            start a new conversation")
	fmt.Fprintln(stdout, "  /debate on|off  toggle debate vs ranking mode")
	fmt.Fprintln(stdout, "  /cycles <n>     set critique/defense cycles")
	fmt.Fprintln(stdout, "  /stream on|off  toggle token streaming")
	fmt.Fprintln(stdout, "  /react on|off   toggle ReAct reasoning")
	fmt.Fprintln(stdout, "  /mode           show the current mode")
	fmt.Fprintln(stdout, "  /exit           leave the chat")
}

func printHistory(conversations *store.Store, stdout io.Writer) {
	summaries, err := conversations.List()
	if err != nil {
		fmt.Fprintln(stdout, err)
		return
	}
	if len(summaries) == 0 {
		fmt.Fprintln(stdout, "No saved conversations.")
		return
	}
	for _, summary := range summaries {
		fmt.Fprintf(stdout, "%s  %-40s %s (%d turns)\n",
			summary.ID[:8], summary.Title, summary.CreatedAt.Format("2006-01-02 15:04"), summary.TurnCount)
	}
}

func useConversation(state *chatState, conversations *store.Store, prefix string, stdout io.Writer) {
	if prefix == "" {
		fmt.Fprintln(stdout, "Usage: /use <id prefix>")
		return
	}
	summaries, err := conversations.List()
	if err != nil {
		fmt.Fprintln(stdout, err)
		return
	}
	var matches []string
	for _, summary := range summaries {
		if strings.HasPrefix(summary.ID, prefix) {
			matches = append(matches, summary.ID)
		}
	}
	switch len(matches) {
	case 0:
		fmt.Fprintln(stdout, "No conversation matches that id prefix.")
	case 1:
		conversation, err := conversations.Load(matches[0])
		if err != nil {
			fmt.Fprintln(stdout, err)
			return
		}
		state.conversation = conversation
		fmt.Fprintf(stdout, "Resumed %q (%d turns).\n", conversation.Title, len(conversation.Turns))
	default:
		fmt.Fprintln(stdout, "Multiple conversations match that prefix.")
	}
}
