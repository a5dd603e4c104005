package live

import (
	"strings"
	"unicode/utf8"

	"council/internal/council"
)

// participantState tracks one model's progress within the current round.
type participantState int

const (
	participantWaiting participantState = iota
	participantRunning
	participantSearching
	participantDone
	participantFailed
)

// State is the reducible UI state fed by council events.
type State struct {
	RoundNumber int
	RoundType   council.RoundType
	Order       []string
	Status      map[string]participantState
	Detail      map[string]string
	Trace       []string
	TokenTail   string
	Reflection  string
	Synthesis   string
	ErrMessage  string
	Finished    bool
}

// newState returns an empty reducer state.
func newState() State {
	return State{
		Status: map[string]participantState{},
		Detail: map[string]string{},
	}
}

// tokenTailLimit bounds the streamed-token preview.
const tokenTailLimit = 600

// traceLimit bounds the retained reasoning trace lines.
const traceLimit = 12

// apply folds one event into the state.
func (s State) apply(event council.Event) State {
	switch event.Type {
	case council.EventRoundStart:
		s.RoundNumber = event.RoundNumber
		s.RoundType = event.RoundType
		s.Order = nil
		s.Status = map[string]participantState{}
		s.Detail = map[string]string{}
		s.TokenTail = ""
	case council.EventModelStart:
		if _, known := s.Status[event.Model]; !known {
			s.Order = append(s.Order, event.Model)
		}
		s.Status[event.Model] = participantRunning
	case council.EventToken:
		s.TokenTail = clipTail(s.TokenTail+event.Content, tokenTailLimit)
	case council.EventToolCall:
		s.Status[event.Model] = participantSearching
		s.Detail[event.Model] = event.Args
	case council.EventToolResult:
		s.Status[event.Model] = participantRunning
	case council.EventThought:
		s.Trace = clipLines(append(s.Trace, "Thought: "+firstLine(event.Text)), traceLimit)
	case council.EventAction:
		line := "Action: " + event.Tool
		if event.Args != "" {
			line += "(" + event.Args + ")"
		}
		s.Trace = clipLines(append(s.Trace, line), traceLimit)
	case council.EventObservation:
		s.Trace = clipLines(append(s.Trace, "Observation: "+firstLine(event.Text)), traceLimit)
	case council.EventModelComplete:
		s.Status[event.Model] = participantDone
		s.Detail[event.Model] = ""
	case council.EventModelError:
		s.Status[event.Model] = participantFailed
		s.Detail[event.Model] = event.Message
	case council.EventReflection:
		s.Reflection = event.Text
	case council.EventSynthesis:
		s.Synthesis = event.Text
		s.Finished = true
	case council.EventDebateComplete:
		s.TokenTail = ""
	case council.EventError:
		s.ErrMessage = event.Message
		s.Finished = true
	}
	return s
}

// clipTail keeps the last limit bytes at a rune boundary.
func clipTail(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	start := len(text) - limit
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	clipped := text[start:]
	if idx := strings.IndexRune(clipped, '\n'); idx >= 0 {
		clipped = clipped[idx+1:]
	}
	return clipped
}

// clipLines keeps the last limit lines.
func clipLines(lines []string, limit int) []string {
	if len(lines) <= limit {
		return lines
	}
	return lines[len(lines)-limit:]
}

// firstLine trims a text to its first line.
func firstLine(text string) string {
	if idx := strings.IndexRune(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
