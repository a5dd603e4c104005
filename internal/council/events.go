package council

// EventType identifies a deliberation event.
type EventType string

const (
	// EventRoundStart marks the beginning of a round.
	EventRoundStart EventType = "round_start"
	// EventRoundComplete carries the completed RoundRecord for a round.
	EventRoundComplete EventType = "round_complete"
	// EventModelStart marks a participant beginning work in a round.
	EventModelStart EventType = "model_start"
	// EventModelComplete carries a participant's finished response.
	EventModelComplete EventType = "model_complete"
	// EventModelError marks a participant failure; no model_complete follows.
	EventModelError EventType = "model_error"
	// EventToken carries one streamed content chunk.
	EventToken EventType = "token"
	// EventToolCall marks a tool invocation requested by a participant.
	EventToolCall EventType = "tool_call"
	// EventToolResult carries a tool handler's formatted output.
	EventToolResult EventType = "tool_result"
	// EventThought carries a ReAct reasoning step.
	EventThought EventType = "thought"
	// EventAction carries a ReAct action choice.
	EventAction EventType = "action"
	// EventObservation carries a ReAct tool observation.
	EventObservation EventType = "observation"
	// EventReflection carries the chairman's pre-synthesis analysis.
	EventReflection EventType = "reflection"
	// EventSynthesis carries the chairman's final answer.
	EventSynthesis EventType = "synthesis"
	// EventDebateComplete carries all rounds of a finished debate.
	EventDebateComplete EventType = "debate_complete"
	// EventError is a fatal run-level failure.
	EventError EventType = "error"
)

// Event is one entry of the deliberation event stream. Which fields are
// populated depends on Type; consumers must tolerate unknown types.
type Event struct {
	Type        EventType
	RoundNumber int
	RoundType   RoundType
	Model       string
	Content     string
	Response    Response
	Responses   []Response
	Rounds      []RoundRecord
	Tool        string
	Args        string
	Result      string
	Text        string
	Message     string
}

// Terminal reports whether the event ends a run.
func (e Event) Terminal() bool {
	switch e.Type {
	case EventDebateComplete, EventSynthesis, EventError:
		return true
	default:
		return false
	}
}
