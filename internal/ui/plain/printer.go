// Package plain renders a deliberation event stream as line output for
// non-interactive terminals and logs.
package plain

import (
	"fmt"
	"io"
	"strings"

	"council/internal/council"
)

// Printer writes human-readable lines for each event.
type Printer struct {
	Out        io.Writer
	ShowTokens bool

	streaming bool
}

// New constructs a printer. When showTokens is set, streamed chunks are
// echoed as they arrive (sequential-streaming mode).
func New(out io.Writer, showTokens bool) *Printer {
	return &Printer{Out: out, ShowTokens: showTokens}
}

// Consume drains the stream, printing as it goes.
func (p *Printer) Consume(events <-chan council.Event) {
	for event := range events {
		p.Print(event)
	}
	p.endTokenBlock()
}

// Print renders one event.
func (p *Printer) Print(event council.Event) {
	switch event.Type {
	case council.EventRoundStart:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "\n=== Round %d: %s ===\n", event.RoundNumber, event.RoundType)
	case council.EventModelStart:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "• %s…\n", event.Model)
	case council.EventToken:
		if p.ShowTokens {
			fmt.Fprint(p.Out, event.Content)
			p.streaming = true
		}
	case council.EventToolCall:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "  [%s] %s(%s)\n", event.Model, event.Tool, event.Args)
	case council.EventToolResult:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "  [%s] %s → %s\n", event.Model, event.Tool, firstLine(event.Result))
	case council.EventThought:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "  [%s] Thought: %s\n", event.Model, firstLine(event.Text))
	case council.EventAction:
		p.endTokenBlock()
		if event.Args != "" {
			fmt.Fprintf(p.Out, "  [%s] Action: %s(%q)\n", event.Model, event.Tool, event.Args)
		} else {
			fmt.Fprintf(p.Out, "  [%s] Action: %s()\n", event.Model, event.Tool)
		}
	case council.EventObservation:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "  [%s] Observation: %s\n", event.Model, firstLine(event.Text))
	case council.EventModelComplete:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "✓ %s\n", event.Model)
	case council.EventModelError:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "✗ %s: %s\n", event.Model, event.Message)
	case council.EventRoundComplete:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "--- round %d complete (%d responses) ---\n", event.RoundNumber, len(event.Responses))
	case council.EventReflection:
		p.endTokenBlock()
		if event.Text != "" {
			fmt.Fprintf(p.Out, "\n## Chairman's analysis\n%s\n", event.Text)
		}
	case council.EventSynthesis:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "\n## Synthesis (%s)\n%s\n", event.Model, event.Text)
	case council.EventDebateComplete:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "\nDebate finished after %d rounds.\n", len(event.Rounds))
	case council.EventError:
		p.endTokenBlock()
		fmt.Fprintf(p.Out, "\nError: %s\n", event.Message)
	}
}

// Flush terminates any open streamed-token run.
func (p *Printer) Flush() {
	p.endTokenBlock()
}

// endTokenBlock terminates a streamed-token run with a newline.
func (p *Printer) endTokenBlock() {
	if p.streaming {
		fmt.Fprintln(p.Out)
		p.streaming = false
	}
}

// firstLine trims text to its first line.
func firstLine(text string) string {
	if idx := strings.IndexRune(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
