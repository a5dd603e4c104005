// Package testutil provides shared fakes for engine tests.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"council/internal/council"
	"council/internal/gateway"
)

// Reply scripts one assistant turn of a fake gateway model.
type Reply struct {
	Content   string
	ToolCalls []council.ToolCall
	Delay     time.Duration
	Err       string
}

// FakeGateway implements gateway.Client with per-model scripted replies.
// Replies are consumed in order per model; requests are recorded for
// assertions.
type FakeGateway struct {
	mu       sync.Mutex
	scripts  map[string][]Reply
	Requests map[string][][]council.Message
}

// NewFakeGateway builds an empty fake.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		scripts:  map[string][]Reply{},
		Requests: map[string][][]council.Message{},
	}
}

// Script appends replies for a model.
func (f *FakeGateway) Script(model string, replies ...Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[model] = append(f.scripts[model], replies...)
}

// next pops the model's next reply and records the request.
func (f *FakeGateway) next(model string, messages []council.Message) Reply {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests[model] = append(f.Requests[model], append([]council.Message(nil), messages...))
	queue := f.scripts[model]
	if len(queue) == 0 {
		return Reply{Err: "no scripted reply for " + model}
	}
	reply := queue[0]
	f.scripts[model] = queue[1:]
	return reply
}

// RequestCount reports how many requests a model received.
func (f *FakeGateway) RequestCount(model string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests[model])
}

// wait simulates request latency against the configured timeout.
func wait(ctx context.Context, delay, timeout time.Duration) error {
	if delay <= 0 {
		return nil
	}
	var timeoutCh <-chan time.Time
	if timeout > 0 && delay > timeout {
		timeoutCh = time.After(timeout)
	}
	select {
	case <-time.After(delay):
		return nil
	case <-timeoutCh:
		return errors.New("Timeout after " + strconv.FormatFloat(timeout.Seconds(), 'f', -1, 64) + "s")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Query implements gateway.Client.
func (f *FakeGateway) Query(ctx context.Context, model string, messages []council.Message, tools []gateway.Tool, timeout time.Duration) (gateway.QueryResult, error) {
	reply := f.next(model, messages)
	if err := wait(ctx, reply.Delay, timeout); err != nil {
		return gateway.QueryResult{}, err
	}
	if reply.Err != "" {
		return gateway.QueryResult{}, errors.New(reply.Err)
	}
	return gateway.QueryResult{Content: reply.Content, ToolCalls: reply.ToolCalls}, nil
}

// Stream implements gateway.Client, emitting the content in two chunks.
func (f *FakeGateway) Stream(ctx context.Context, model string, messages []council.Message, tools []gateway.Tool, timeout time.Duration) <-chan gateway.StreamEvent {
	out := make(chan gateway.StreamEvent)
	go func() {
		defer close(out)
		reply := f.next(model, messages)
		if err := wait(ctx, reply.Delay, timeout); err != nil {
			out <- gateway.StreamEvent{Type: gateway.StreamError, Err: err.Error()}
			return
		}
		if reply.Err != "" {
			out <- gateway.StreamEvent{Type: gateway.StreamError, Err: reply.Err}
			return
		}
		for _, chunk := range chunks(reply.Content) {
			out <- gateway.StreamEvent{Type: gateway.StreamToken, Content: chunk}
		}
		out <- gateway.StreamEvent{Type: gateway.StreamDone, Done: gateway.DoneResult{Content: reply.Content}}
	}()
	return out
}

// QueryWithTools implements the non-streaming tool loop over scripted
// replies.
func (f *FakeGateway) QueryWithTools(ctx context.Context, model string, messages []council.Message, tools []gateway.Tool, executor gateway.ToolExecutor, maxToolCalls int, timeout time.Duration) (gateway.QueryResult, error) {
	conversation := append([]council.Message(nil), messages...)
	var made []council.ToolCallRecord
	for attempt := 0; ; attempt++ {
		reply := f.next(model, conversation)
		if err := wait(ctx, reply.Delay, timeout); err != nil {
			return gateway.QueryResult{}, err
		}
		if reply.Err != "" {
			return gateway.QueryResult{}, errors.New(reply.Err)
		}
		if len(reply.ToolCalls) == 0 {
			return gateway.QueryResult{Content: reply.Content, ToolCallsMade: made}, nil
		}
		if attempt >= maxToolCalls {
			return gateway.QueryResult{Content: reply.Content, ToolCalls: reply.ToolCalls, ToolCallsMade: made}, nil
		}
		conversation = append(conversation, council.Message{Role: "assistant", Content: reply.Content, ToolCalls: reply.ToolCalls})
		for _, call := range reply.ToolCalls {
			result := executor.Execute(ctx, call.Name, call.Arguments)
			made = append(made, council.ToolCallRecord{Tool: call.Name, Args: call.Arguments, ResultPreview: result})
			conversation = append(conversation, council.Message{Role: "tool", Content: result, ToolCallID: call.ID})
		}
	}
}

// StreamWithTools implements the streaming tool loop over scripted replies.
func (f *FakeGateway) StreamWithTools(ctx context.Context, model string, messages []council.Message, tools []gateway.Tool, executor gateway.ToolExecutor, maxToolCalls int, timeout time.Duration) <-chan gateway.StreamEvent {
	out := make(chan gateway.StreamEvent)
	go func() {
		defer close(out)
		conversation := append([]council.Message(nil), messages...)
		var made []council.ToolCallRecord
		for attempt := 0; ; attempt++ {
			reply := f.next(model, conversation)
			if err := wait(ctx, reply.Delay, timeout); err != nil {
				out <- gateway.StreamEvent{Type: gateway.StreamError, Err: err.Error()}
				return
			}
			if reply.Err != "" {
				out <- gateway.StreamEvent{Type: gateway.StreamError, Err: reply.Err}
				return
			}
			for _, chunk := range chunks(reply.Content) {
				out <- gateway.StreamEvent{Type: gateway.StreamToken, Content: chunk}
			}
			if len(reply.ToolCalls) == 0 || attempt >= maxToolCalls {
				out <- gateway.StreamEvent{Type: gateway.StreamDone, Done: gateway.DoneResult{Content: reply.Content, ToolCallsMade: made}}
				return
			}
			conversation = append(conversation, council.Message{Role: "assistant", Content: reply.Content, ToolCalls: reply.ToolCalls})
			for _, call := range reply.ToolCalls {
				out <- gateway.StreamEvent{Type: gateway.StreamToolCall, Index: -1, CallID: call.ID, Name: call.Name, Arguments: call.Arguments}
				result := executor.Execute(ctx, call.Name, call.Arguments)
				made = append(made, council.ToolCallRecord{Tool: call.Name, Args: call.Arguments, ResultPreview: result})
				out <- gateway.StreamEvent{Type: gateway.StreamToolResult, ToolCallID: call.ID, Name: call.Name, Result: result}
				conversation = append(conversation, council.Message{Role: "tool", Content: result, ToolCallID: call.ID})
			}
		}
	}()
	return out
}

// chunks splits content into two streamed pieces.
func chunks(content string) []string {
	if content == "" {
		return nil
	}
	if len(content) < 2 {
		return []string{content}
	}
	mid := len(content) / 2
	return []string{content[:mid], content[mid:]}
}

// NoopExecutor is a tool executor that echoes its input.
type NoopExecutor struct{}

// Execute implements gateway.ToolExecutor.
func (NoopExecutor) Execute(ctx context.Context, name, argumentsJSON string) string {
	return "executed " + name + " with " + argumentsJSON
}
