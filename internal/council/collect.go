package council

// Collector accumulates a run's terminal values from its event stream.
// Feed every event through Observe; read the fields once the stream is
// closed.
type Collector struct {
	Rounds       []RoundRecord
	Synthesis    Response
	HasSynthesis bool
	ErrMessage   string
}

// Observe folds one event into the collector.
func (c *Collector) Observe(event Event) {
	switch event.Type {
	case EventDebateComplete:
		c.Rounds = event.Rounds
	case EventSynthesis:
		c.Synthesis = Response{Model: event.Model, Content: event.Text}
		c.HasSynthesis = true
	case EventError:
		c.ErrMessage = event.Message
	}
}

// DebateResult assembles the debate-mode terminal value.
func (c *Collector) DebateResult() DebateResult {
	return DebateResult{Rounds: c.Rounds, Synthesis: c.Synthesis}
}

// Failed reports whether the run ended with a fatal error.
func (c *Collector) Failed() bool {
	return c.ErrMessage != ""
}
