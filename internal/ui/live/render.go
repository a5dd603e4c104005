package live

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"council/internal/council"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	searchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	tokenStyle   = lipgloss.NewStyle().Faint(true)
	traceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

// render draws the whole view.
func render(state State, spinnerView string, width int, noColor bool) string {
	var view strings.Builder

	if state.RoundNumber > 0 {
		view.WriteString(styled(headerStyle, roundTitle(state.RoundNumber, state.RoundType), noColor) + "\n\n")
	}

	for _, model := range state.Order {
		view.WriteString(participantLine(state, model, spinnerView, noColor) + "\n")
	}

	if len(state.Trace) > 0 {
		view.WriteString("\n")
		for _, line := range state.Trace {
			view.WriteString(styled(traceStyle, line, noColor) + "\n")
		}
	}

	if state.TokenTail != "" {
		view.WriteString("\n" + styled(tokenStyle, wrap(state.TokenTail, width), noColor) + "\n")
	}

	if state.Reflection != "" {
		view.WriteString("\n" + styled(sectionStyle, "Chairman's analysis", noColor) + "\n")
		view.WriteString(wrap(state.Reflection, width) + "\n")
	}

	if state.Synthesis != "" {
		view.WriteString("\n" + styled(sectionStyle, "Synthesis", noColor) + "\n")
		view.WriteString(wrap(state.Synthesis, width) + "\n")
	}

	if state.ErrMessage != "" {
		view.WriteString("\n" + styled(failStyle, "Error: "+state.ErrMessage, noColor) + "\n")
	}

	return view.String()
}

// roundTitle names a round for the header line.
func roundTitle(number int, roundType council.RoundType) string {
	return fmt.Sprintf("Round %d — %s", number, roundType)
}

// participantLine renders one model's status row.
func participantLine(state State, model, spinnerView string, noColor bool) string {
	switch state.Status[model] {
	case participantDone:
		return styled(doneStyle, "✓ ", noColor) + model
	case participantFailed:
		return styled(failStyle, "✗ ", noColor) + model + styled(failStyle, "  "+state.Detail[model], noColor)
	case participantSearching:
		return spinnerView + model + styled(searchStyle, "  searching…", noColor)
	default:
		return spinnerView + model
	}
}

// styled applies a style unless colors are disabled.
func styled(style lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return style.Render(text)
}

// wrap soft-wraps text to the view width.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
