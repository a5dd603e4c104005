// Package reflection runs the chairman's single-pass analysis-then-answer
// synthesis over a finished deliberation.
package reflection

import (
	"context"
	"time"

	"council/internal/council"
	"council/internal/gateway"
	"council/internal/parsers"
	"council/internal/prompts"
)

// Synthesizer streams the chairman's reflection and final synthesis. No
// tools are offered; the chairman reasons over the transcript alone.
type Synthesizer struct {
	Gateway  gateway.Client
	Chairman string
	Timeout  time.Duration
	Now      func() time.Time
}

// Synthesize streams one chairman call over the formatted deliberation
// context. Consumers receive token events, then a reflection event with
// everything before the ## Synthesis boundary, then the synthesis itself.
// Without the boundary the reflection is empty and the whole content is
// the synthesis. A gateway failure ends the stream with a fatal error
// event and no synthesis.
func (s *Synthesizer) Synthesize(ctx context.Context, contextText string) <-chan council.Event {
	out := make(chan council.Event)
	go func() {
		defer close(out)
		emit := func(event council.Event) bool {
			select {
			case out <- event:
				return true
			case <-ctx.Done():
				return false
			}
		}

		now := time.Now()
		if s.Now != nil {
			now = s.Now()
		}
		prompt := prompts.BuildReflection(contextText, now)

		content := ""
		for event := range s.Gateway.Stream(ctx, s.Chairman, council.UserMessage(prompt), nil, s.Timeout) {
			switch event.Type {
			case gateway.StreamToken:
				content += event.Content
				if !emit(council.Event{Type: council.EventToken, Model: s.Chairman, Content: event.Content}) {
					return
				}
			case gateway.StreamDone:
				if event.Done.Content != "" {
					content = event.Done.Content
				}
			case gateway.StreamError:
				emit(council.Event{Type: council.EventError, Message: event.Err})
				return
			}
		}
		if ctx.Err() != nil {
			return
		}

		reflectionText, synthesisText := parsers.SplitReflection(content)
		if !emit(council.Event{Type: council.EventReflection, Text: reflectionText}) {
			return
		}
		emit(council.Event{Type: council.EventSynthesis, Model: s.Chairman, Text: synthesisText})
	}()
	return out
}
