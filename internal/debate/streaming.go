package debate

import (
	"context"

	"council/internal/council"
	"council/internal/gateway"
	"council/internal/react"
)

// Streaming executes a round one participant at a time, yielding
// token-level events. Events from different participants never interleave:
// the next participant starts only after the previous one's terminal
// event.
type Streaming struct {
	Opts Options
}

// NewStreaming constructs the sequential-streaming round executor.
func NewStreaming(opts Options) *Streaming {
	return &Streaming{Opts: opts}
}

// ExecuteRound implements RoundExecutor.
func (s *Streaming) ExecuteRound(ctx context.Context, roundType council.RoundType, userQuery string, rctx RoundContext) <-chan council.Event {
	out := make(chan council.Event)
	go func() {
		defer close(out)
		emit := eventEmitter(ctx, out)

		config, err := BuildRoundConfig(roundType, userQuery, rctx, s.Opts.UseReAct, s.Opts.now())
		if err != nil {
			emit(council.Event{Type: council.EventError, Message: err.Error()})
			return
		}

		responses := make([]council.Response, 0, len(s.Opts.Participants))
		for _, model := range s.Opts.Participants {
			if !emit(council.Event{Type: council.EventModelStart, Model: model}) {
				return
			}
			response, ok := s.runParticipant(ctx, config, model, emit)
			if ok {
				responses = append(responses, response)
			}
			if ctx.Err() != nil {
				return
			}
		}

		emit(council.Event{Type: council.EventRoundComplete, RoundType: roundType, Responses: responses})
	}()
	return out
}

// runParticipant streams one participant to its terminal event. It returns
// the completed response, or ok=false after a model_error.
func (s *Streaming) runParticipant(ctx context.Context, config RoundConfig, model string, emit func(council.Event) bool) (council.Response, bool) {
	prompt, useReAct := roundPrompt(config, s.Opts, model)

	if useReAct {
		loop := &react.Loop{
			Gateway:       s.Opts.Gateway,
			Executor:      s.Opts.Executor,
			MaxIterations: s.Opts.ReActIterations,
			Timeout:       s.Opts.Timeout,
		}
		result := forwardLoop(loop.Run(ctx, model, prompt), config, model, emit)
		if result.failed {
			emit(council.Event{Type: council.EventModelError, Model: model, Message: result.errText})
			return council.Response{}, false
		}
		if !emit(council.Event{Type: council.EventModelComplete, Model: model, Response: result.response}) {
			return council.Response{}, false
		}
		return result.response, true
	}

	messages := council.UserMessage(prompt)
	var events <-chan gateway.StreamEvent
	if config.UsesTools {
		events = s.Opts.Gateway.StreamWithTools(ctx, model, messages, s.Opts.Tools, s.Opts.Executor, s.Opts.MaxStreamToolCalls, s.Opts.Timeout)
	} else {
		events = s.Opts.Gateway.Stream(ctx, model, messages, nil, s.Opts.Timeout)
	}

	content := ""
	var made []council.ToolCallRecord
	for event := range events {
		switch event.Type {
		case gateway.StreamToken:
			content += event.Content
			if !emit(council.Event{Type: council.EventToken, Model: model, Content: event.Content}) {
				return council.Response{}, false
			}
		case gateway.StreamToolCall:
			if !emit(council.Event{Type: council.EventToolCall, Model: model, Tool: event.Name, Args: event.Arguments}) {
				return council.Response{}, false
			}
		case gateway.StreamToolResult:
			if !emit(council.Event{Type: council.EventToolResult, Model: model, Tool: event.Name, Result: event.Result}) {
				return council.Response{}, false
			}
		case gateway.StreamDone:
			if event.Done.Content != "" {
				content = event.Done.Content
			}
			made = event.Done.ToolCallsMade
		case gateway.StreamError:
			emit(council.Event{Type: council.EventModelError, Model: model, Message: event.Err})
			return council.Response{}, false
		}
	}

	response := finishResponse(config, council.Response{
		Model:         model,
		Content:       content,
		ToolCallsMade: made,
	})
	if !emit(council.Event{Type: council.EventModelComplete, Model: model, Response: response}) {
		return council.Response{}, false
	}
	return response, true
}
