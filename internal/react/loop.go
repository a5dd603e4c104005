// Package react runs the text-based Thought/Action/Observation loop for a
// single participant, surfacing the model's reasoning as events.
package react

import (
	"context"
	"encoding/json"
	"time"

	"council/internal/council"
	"council/internal/gateway"
	"council/internal/parsers"
)

// DefaultMaxIterations caps the reasoning steps of one loop.
const DefaultMaxIterations = 3

// continueNudge re-anchors the model after an observation.
const continueNudge = "Continue your reasoning:"

// retryNudge asks for a well-formed action after unparseable output.
const retryNudge = `Please respond with a valid Action: either search_web("query") or respond()`

// finalNudge forces a terminal answer once the iteration cap is hit.
const finalNudge = "Please provide your final answer now (no Thought/Action format, just the answer):"

// previewLimit bounds tool result previews kept in transcripts.
const previewLimit = 200

// Loop drives the agent loop for one participant.
type Loop struct {
	Gateway       gateway.Client
	Executor      gateway.ToolExecutor
	MaxIterations int
	Timeout       time.Duration
}

// Run streams one participant's loop over a ReAct-wrapped prompt. The
// stream ends with exactly one model_complete (reasoned response) or
// model_error event and is closed by the producer.
func (l *Loop) Run(ctx context.Context, model, prompt string) <-chan council.Event {
	out := make(chan council.Event)
	go func() {
		defer close(out)
		l.run(ctx, model, prompt, out)
	}()
	return out
}

func (l *Loop) run(ctx context.Context, model, prompt string, out chan<- council.Event) {
	emit := func(event council.Event) bool {
		select {
		case out <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}

	messages := council.UserMessage(prompt)
	var made []council.ToolCallRecord
	lastContent := ""

	for iteration := 0; iteration < l.maxIterations(); iteration++ {
		content, ok := l.streamTurn(ctx, model, messages, emit)
		if !ok {
			return
		}
		lastContent = content

		thought, action, arg := parsers.ParseReAct(content)
		if thought != "" {
			if !emit(council.Event{Type: council.EventThought, Model: model, Text: thought}) {
				return
			}
		}

		switch {
		case parsers.TerminalAction(action):
			answer, found := parsers.ExtractAfterAction(content, action)
			if !found || answer == "" {
				answer = content
			}
			emit(council.Event{Type: council.EventAction, Model: model, Tool: parsers.ActionRespond})
			emit(council.Event{
				Type:  council.EventModelComplete,
				Model: model,
				Response: council.Response{
					Model:         model,
					Content:       answer,
					Reasoned:      true,
					ToolCallsMade: made,
				},
			})
			return

		case action == parsers.ActionSearchWeb:
			if !emit(council.Event{Type: council.EventAction, Model: model, Tool: parsers.ActionSearchWeb, Args: arg}) {
				return
			}
			argsJSON := encodeQuery(arg)
			if !emit(council.Event{Type: council.EventToolCall, Model: model, Tool: parsers.ActionSearchWeb, Args: argsJSON}) {
				return
			}
			observation := l.Executor.Execute(ctx, parsers.ActionSearchWeb, argsJSON)
			made = append(made, council.ToolCallRecord{
				Tool:          parsers.ActionSearchWeb,
				Args:          argsJSON,
				ResultPreview: preview(observation),
			})
			if !emit(council.Event{Type: council.EventToolResult, Model: model, Tool: parsers.ActionSearchWeb, Result: observation}) {
				return
			}
			if !emit(council.Event{Type: council.EventObservation, Model: model, Text: observation}) {
				return
			}
			messages = append(messages,
				council.Message{Role: "assistant", Content: content},
				council.Message{Role: "user", Content: "Observation: " + observation + "\n\n" + continueNudge},
			)

		default:
			messages = append(messages,
				council.Message{Role: "assistant", Content: content},
				council.Message{Role: "user", Content: retryNudge},
			)
		}
	}

	// Cap reached without a terminal action: one forced respond pass.
	messages = append(messages, council.Message{Role: "user", Content: finalNudge})
	answer, ok := l.streamTurn(ctx, model, messages, emit)
	if !ok {
		return
	}
	if answer == "" {
		answer = lastContent
	}
	emit(council.Event{
		Type:  council.EventModelComplete,
		Model: model,
		Response: council.Response{
			Model:         model,
			Content:       answer,
			Reasoned:      true,
			ToolCallsMade: made,
		},
	})
}

// streamTurn streams one request, forwarding token events. It returns the
// accumulated content, or ok=false when the stream failed or the consumer
// went away (a model_error event has been emitted for failures).
func (l *Loop) streamTurn(ctx context.Context, model string, messages []council.Message, emit func(council.Event) bool) (string, bool) {
	content := ""
	for event := range l.Gateway.Stream(ctx, model, messages, nil, l.Timeout) {
		switch event.Type {
		case gateway.StreamToken:
			content += event.Content
			if !emit(council.Event{Type: council.EventToken, Model: model, Content: event.Content}) {
				return "", false
			}
		case gateway.StreamDone:
			if event.Done.Content != "" {
				content = event.Done.Content
			}
		case gateway.StreamError:
			emit(council.Event{Type: council.EventModelError, Model: model, Message: event.Err})
			return "", false
		}
	}
	return content, true
}

// maxIterations returns the configured cap or the default.
func (l *Loop) maxIterations() int {
	if l.MaxIterations > 0 {
		return l.MaxIterations
	}
	return DefaultMaxIterations
}

// encodeQuery renders the search_web argument JSON.
func encodeQuery(query string) string {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return `{"query":""}`
	}
	return string(payload)
}

// preview truncates a tool result for transcript records.
func preview(result string) string {
	if len(result) <= previewLimit {
		return result
	}
	return result[:previewLimit] + "..."
}
