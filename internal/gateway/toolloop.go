package gateway

import (
	"context"
	"time"

	"council/internal/council"
)

// previewLimit bounds tool result previews kept in transcripts.
const previewLimit = 200

// QueryWithTools runs the non-streaming tool loop: the model is queried,
// requested tool calls are executed in submission order, and the cycle
// repeats until a reply without tool calls or until maxToolCalls tool
// rounds have run. The model responds at least once; when the cap is hit
// the last reply is returned verbatim with its calls unexecuted.
func (g *OpenRouter) QueryWithTools(ctx context.Context, model string, messages []council.Message, tools []Tool, executor ToolExecutor, maxToolCalls int, timeout time.Duration) (QueryResult, error) {
	conversation := append([]council.Message(nil), messages...)
	var made []council.ToolCallRecord

	for attempt := 0; ; attempt++ {
		reply, err := g.queryTurn(ctx, model, conversation, tools, timeout)
		if err != nil {
			return QueryResult{}, err
		}
		calls := toToolCalls(reply.ToolCalls)
		if len(calls) == 0 {
			return QueryResult{Content: reply.Content, ToolCallsMade: made}, nil
		}
		if attempt >= maxToolCalls {
			return QueryResult{Content: reply.Content, ToolCalls: calls, ToolCallsMade: made}, nil
		}

		conversation = append(conversation, council.Message{
			Role:      "assistant",
			Content:   reply.Content,
			ToolCalls: calls,
		})
		for _, call := range calls {
			result := executor.Execute(ctx, call.Name, call.Arguments)
			made = append(made, council.ToolCallRecord{
				Tool:          call.Name,
				Args:          call.Arguments,
				ResultPreview: preview(result),
			})
			conversation = append(conversation, council.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}
}

// queryTurn issues one non-streaming request under its own deadline.
func (g *OpenRouter) queryTurn(ctx context.Context, model string, messages []council.Message, tools []Tool, timeout time.Duration) (wireMessage, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	return g.send(ctx, model, messages, tools, timeout)
}

// preview truncates a tool result for transcript records.
func preview(result string) string {
	if len(result) <= previewLimit {
		return result
	}
	return result[:previewLimit] + "..."
}
