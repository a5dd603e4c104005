// Package live renders a deliberation event stream as a terminal UI.
package live

import (
	tea "github.com/charmbracelet/bubbletea"

	"council/internal/council"
)

// EventMsg wraps one council event for the Bubble Tea update loop.
type EventMsg struct {
	Event council.Event
}

// doneMsg signals that the event stream closed.
type doneMsg struct{}

// waitForEvent reads the next event from the stream.
func waitForEvent(events <-chan council.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return EventMsg{Event: event}
	}
}
