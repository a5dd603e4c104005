package gateway

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"council/internal/council"
)

// turnResult is the assembled outcome of one streamed assistant turn.
type turnResult struct {
	content string
	calls   []council.ToolCall
}

// callAccumulator gathers streaming tool-call fragments for one index.
type callAccumulator struct {
	id        string
	name      string
	arguments strings.Builder
}

// Stream sends one streaming request and yields token and tool-call
// fragment events followed by exactly one terminal event. Tool calls in
// the reply are surfaced but not executed.
func (g *OpenRouter) Stream(ctx context.Context, model string, messages []council.Message, tools []Tool, timeout time.Duration) <-chan StreamEvent {
	out := make(chan StreamEvent)
	go func() {
		defer close(out)
		ctx, cancel := withTimeout(ctx, timeout)
		defer cancel()

		emit := emitter(ctx, out)
		result, err := g.streamTurn(ctx, model, messages, tools, timeout, emit, true)
		if err != nil {
			emit(errorEvent(err.Error()))
			return
		}
		emit(doneEvent(result.content, nil))
	}()
	return out
}

// emitter returns a send function that drops the stream on cancellation.
func emitter(ctx context.Context, out chan<- StreamEvent) func(StreamEvent) bool {
	return func(event StreamEvent) bool {
		select {
		case out <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}
}

// streamTurn runs a single SSE request cycle, forwarding token events and
// assembling tool-call fragments merged by choice index. The fragment
// events themselves are forwarded only when emitFragments is set.
func (g *OpenRouter) streamTurn(ctx context.Context, model string, messages []council.Message, tools []Tool, timeout time.Duration, emit func(StreamEvent) bool, emitFragments bool) (turnResult, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: buildWireMessages(messages),
		Tools:    buildWireTools(tools),
		Stream:   true,
	})
	if err != nil {
		return turnResult{}, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := g.post(ctx, payload)
	if err != nil {
		return turnResult{}, wrapTransport(err, timeout)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return turnResult{}, fmt.Errorf("gateway error: %s", strings.TrimSpace(string(body)))
	}

	return readSSE(ctx, resp.Body, timeout, emit, emitFragments)
}

// readSSE consumes data: lines until [DONE] or stream end.
func readSSE(ctx context.Context, body io.Reader, timeout time.Duration, emit func(StreamEvent) bool, emitFragments bool) (turnResult, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var content strings.Builder
	accumulators := map[int]*callAccumulator{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return turnResult{}, fmt.Errorf("parse stream chunk: %w", err)
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				content.WriteString(choice.Delta.Content)
				if !emit(tokenEvent(choice.Delta.Content)) {
					return turnResult{}, ctx.Err()
				}
			}
			for _, part := range choice.Delta.ToolCalls {
				mergeFragment(accumulators, part)
				if emitFragments {
					if !emit(StreamEvent{
						Type:      StreamToolCall,
						Index:     part.Index,
						CallID:    part.ID,
						Name:      part.Function.Name,
						Arguments: part.Function.Arguments,
					}) {
						return turnResult{}, ctx.Err()
					}
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		if isTimeout(err) || ctx.Err() == context.DeadlineExceeded {
			return turnResult{}, timeoutError(timeout)
		}
		return turnResult{}, err
	}
	if ctx.Err() == context.DeadlineExceeded {
		return turnResult{}, timeoutError(timeout)
	}

	return turnResult{content: content.String(), calls: assembleCalls(accumulators)}, nil
}

// mergeFragment folds one fragment into its accumulator; id and name are
// latched on first appearance, argument fragments concatenate in arrival
// order.
func mergeFragment(accumulators map[int]*callAccumulator, part streamToolCallPart) {
	acc := accumulators[part.Index]
	if acc == nil {
		acc = &callAccumulator{}
		accumulators[part.Index] = acc
	}
	if acc.id == "" && part.ID != "" {
		acc.id = part.ID
	}
	if acc.name == "" && part.Function.Name != "" {
		acc.name = part.Function.Name
	}
	if part.Function.Arguments != "" {
		acc.arguments.WriteString(part.Function.Arguments)
	}
}

// assembleCalls orders accumulated calls by index.
func assembleCalls(accumulators map[int]*callAccumulator) []council.ToolCall {
	if len(accumulators) == 0 {
		return nil
	}
	indices := make([]int, 0, len(accumulators))
	for index := range accumulators {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	calls := make([]council.ToolCall, 0, len(indices))
	for _, index := range indices {
		acc := accumulators[index]
		id := acc.id
		if id == "" {
			id = fmt.Sprintf("call-%d", index)
		}
		calls = append(calls, council.ToolCall{
			ID:        id,
			Name:      acc.name,
			Arguments: acc.arguments.String(),
		})
	}
	return calls
}
