package cli

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"council/internal/council"
	"council/internal/ui/live"
	"council/internal/ui/plain"
)

// presentOptions selects how an event stream is rendered.
type presentOptions struct {
	stdout     io.Writer
	plain      bool
	noColor    bool
	showTokens bool
}

// presentOutcome summarizes the run for exit-code decisions.
type presentOutcome struct {
	errMessage string
	synthesis  string
}

// present drains an event stream through the live view when stdout is an
// interactive terminal, falling back to line output otherwise.
func present(events <-chan council.Event, opts presentOptions) presentOutcome {
	if !opts.plain && isTerminal(opts.stdout) {
		return presentLive(events, opts)
	}
	return presentPlain(events, opts)
}

// presentLive runs the Bubble Tea view over the stream.
func presentLive(events <-chan council.Event, opts presentOptions) presentOutcome {
	model := live.NewModel(events, live.Options{NoColor: opts.noColor})
	program := tea.NewProgram(model, tea.WithOutput(opts.stdout))
	final, err := program.Run()
	if err != nil {
		// Fall back to draining the stream so producers can finish.
		return presentPlain(events, opts)
	}
	state := final.(live.Model).FinalState()
	return presentOutcome{errMessage: state.ErrMessage, synthesis: state.Synthesis}
}

// presentPlain prints events as lines.
func presentPlain(events <-chan council.Event, opts presentOptions) presentOutcome {
	printer := plain.New(opts.stdout, opts.showTokens)
	var outcome presentOutcome
	for event := range events {
		printer.Print(event)
		switch event.Type {
		case council.EventError:
			outcome.errMessage = event.Message
		case council.EventSynthesis:
			outcome.synthesis = event.Text
		}
	}
	printer.Flush()
	return outcome
}

// isTerminal reports whether the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
