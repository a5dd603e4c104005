package gateway

import (
	"context"
	"time"

	"council/internal/council"
)

// StreamWithTools runs the streaming tool loop. Token events are forwarded
// as they arrive; assembled tool calls are surfaced as StreamToolCall
// (Index -1, full argument JSON) and StreamToolResult pairs. Exactly one
// terminal event is emitted: done with the final content and the executed
// call records, or error. Hitting the tool-round cap still emits done with
// whatever content the last turn produced.
func (g *OpenRouter) StreamWithTools(ctx context.Context, model string, messages []council.Message, tools []Tool, executor ToolExecutor, maxToolCalls int, timeout time.Duration) <-chan StreamEvent {
	out := make(chan StreamEvent)
	go func() {
		defer close(out)
		emit := emitter(ctx, out)
		conversation := append([]council.Message(nil), messages...)
		var made []council.ToolCallRecord

		for attempt := 0; ; attempt++ {
			result, err := g.streamToolTurn(ctx, model, conversation, tools, timeout, emit)
			if err != nil {
				emit(errorEvent(err.Error()))
				return
			}
			if len(result.calls) == 0 || attempt >= maxToolCalls {
				emit(doneEvent(result.content, made))
				return
			}

			conversation = append(conversation, council.Message{
				Role:      "assistant",
				Content:   result.content,
				ToolCalls: result.calls,
			})
			for _, call := range result.calls {
				if !emit(StreamEvent{
					Type:      StreamToolCall,
					Index:     -1,
					CallID:    call.ID,
					Name:      call.Name,
					Arguments: call.Arguments,
				}) {
					return
				}
				output := executor.Execute(ctx, call.Name, call.Arguments)
				made = append(made, council.ToolCallRecord{
					Tool:          call.Name,
					Args:          call.Arguments,
					ResultPreview: preview(output),
				})
				if !emit(StreamEvent{
					Type:       StreamToolResult,
					ToolCallID: call.ID,
					Name:       call.Name,
					Result:     output,
				}) {
					return
				}
				conversation = append(conversation, council.Message{
					Role:       "tool",
					Content:    output,
					ToolCallID: call.ID,
				})
			}
		}
	}()
	return out
}

// streamToolTurn runs one streamed turn under its own deadline, forwarding
// tokens but keeping tool-call fragments internal.
func (g *OpenRouter) streamToolTurn(ctx context.Context, model string, messages []council.Message, tools []Tool, timeout time.Duration, emit func(StreamEvent) bool) (turnResult, error) {
	turnCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	return g.streamTurn(turnCtx, model, messages, tools, timeout, emit, false)
}
