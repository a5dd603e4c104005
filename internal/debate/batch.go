package debate

import (
	"context"

	"council/internal/council"
	"council/internal/react"
)

// Batch executes a round with all participants in flight concurrently,
// yielding results in completion order. Participant failures are isolated:
// a timeout or transport error surfaces as one model_error and never
// aborts siblings.
type Batch struct {
	Opts Options
}

// NewBatch constructs the batch-parallel round executor.
func NewBatch(opts Options) *Batch {
	return &Batch{Opts: opts}
}

// participantResult is one participant's terminal outcome within a round.
type participantResult struct {
	model    string
	response council.Response
	errText  string
	failed   bool
}

// ExecuteRound implements RoundExecutor.
func (b *Batch) ExecuteRound(ctx context.Context, roundType council.RoundType, userQuery string, rctx RoundContext) <-chan council.Event {
	out := make(chan council.Event)
	go func() {
		defer close(out)
		emit := eventEmitter(ctx, out)

		config, err := BuildRoundConfig(roundType, userQuery, rctx, b.Opts.UseReAct, b.Opts.now())
		if err != nil {
			emit(council.Event{Type: council.EventError, Message: err.Error()})
			return
		}

		for _, model := range b.Opts.Participants {
			if !emit(council.Event{Type: council.EventModelStart, Model: model}) {
				return
			}
		}

		results := make(chan participantResult, len(b.Opts.Participants))
		for _, model := range b.Opts.Participants {
			go func(model string) {
				results <- b.runParticipant(ctx, config, model, emit)
			}(model)
		}

		responses := make([]council.Response, 0, len(b.Opts.Participants))
		for range b.Opts.Participants {
			result := <-results
			if result.failed {
				if !emit(council.Event{Type: council.EventModelError, Model: result.model, Message: result.errText}) {
					return
				}
				continue
			}
			if !emit(council.Event{Type: council.EventModelComplete, Model: result.model, Response: result.response}) {
				return
			}
			responses = append(responses, result.response)
		}

		if ctx.Err() != nil {
			return
		}
		emit(council.Event{Type: council.EventRoundComplete, RoundType: roundType, Responses: responses})
	}()
	return out
}

// runParticipant executes one participant and returns its terminal
// outcome. Intermediate agent-loop events are forwarded as they happen;
// the terminal event is returned instead so the round emits it exactly
// once, in completion order.
func (b *Batch) runParticipant(ctx context.Context, config RoundConfig, model string, emit func(council.Event) bool) participantResult {
	prompt, useReAct := roundPrompt(config, b.Opts, model)
	messages := council.UserMessage(prompt)

	if useReAct {
		loop := &react.Loop{
			Gateway:       b.Opts.Gateway,
			Executor:      b.Opts.Executor,
			MaxIterations: b.Opts.ReActIterations,
			Timeout:       b.Opts.Timeout,
		}
		return forwardLoop(loop.Run(ctx, model, prompt), config, model, emit)
	}

	if config.UsesTools {
		result, err := b.Opts.Gateway.QueryWithTools(ctx, model, messages, b.Opts.Tools, b.Opts.Executor, b.Opts.MaxToolCalls, b.Opts.Timeout)
		if err != nil {
			return participantResult{model: model, errText: err.Error(), failed: true}
		}
		return participantResult{model: model, response: finishResponse(config, council.Response{
			Model:         model,
			Content:       result.Content,
			ToolCallsMade: result.ToolCallsMade,
		})}
	}

	result, err := b.Opts.Gateway.Query(ctx, model, messages, nil, b.Opts.Timeout)
	if err != nil {
		return participantResult{model: model, errText: err.Error(), failed: true}
	}
	return participantResult{model: model, response: finishResponse(config, council.Response{
		Model:   model,
		Content: result.Content,
	})}
}

// forwardLoop relays a ReAct loop's intermediate events and captures its
// terminal event as the participant result.
func forwardLoop(events <-chan council.Event, config RoundConfig, model string, emit func(council.Event) bool) participantResult {
	outcome := participantResult{model: model, errText: "model produced no response", failed: true}
	for event := range events {
		switch event.Type {
		case council.EventModelComplete:
			outcome = participantResult{model: model, response: finishResponse(config, event.Response)}
		case council.EventModelError:
			outcome = participantResult{model: model, errText: event.Message, failed: true}
		default:
			if !emit(event) {
				return outcome
			}
		}
	}
	return outcome
}

// eventEmitter returns a send function that stops on cancellation.
func eventEmitter(ctx context.Context, out chan<- council.Event) func(council.Event) bool {
	return func(event council.Event) bool {
		select {
		case out <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}
}
