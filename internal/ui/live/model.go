package live

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"council/internal/council"
)

// Model renders a live deliberation view using Bubble Tea.
type Model struct {
	state   State
	spinner spinner.Model
	events  <-chan council.Event
	width   int
	noColor bool
}

// Options configures the live model.
type Options struct {
	NoColor bool
}

// NewModel constructs a live view over an event stream.
func NewModel(events <-chan council.Event, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		state:   newState(),
		spinner: sp,
		events:  events,
		width:   80,
		noColor: opts.NoColor,
	}
}

// Init starts the spinner and waits for the first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

// Update consumes stream events, resize notices, and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case EventMsg:
		m.state = m.state.apply(typed.Event)
		return m, waitForEvent(m.events)
	case doneMsg:
		m.state.Finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	}
	return m, nil
}

// View renders the current deliberation state.
func (m Model) View() string {
	return render(m.state, m.spinner.View(), m.width, m.noColor)
}

// FinalState exposes the state after the program ends.
func (m Model) FinalState() State {
	return m.state
}
