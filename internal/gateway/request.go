package gateway

import "council/internal/council"

// chatRequest is the JSON payload sent to the chat-completions endpoint.
type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []wireMessage `json:"messages"`
	Tools      []wireTool    `json:"tools,omitempty"`
	ToolChoice string        `json:"tool_choice,omitempty"`
	Stream     bool          `json:"stream,omitempty"`
	MaxTokens  int           `json:"max_tokens,omitempty"`
}

// wireMessage is a single chat message on the wire.
type wireMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content,omitempty"`
	Name       string         `json:"name,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
}

// wireTool describes a function tool on the wire.
type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

// wireFunction is a tool's function signature.
type wireFunction struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// wireToolCall is a tool call inside an assistant message.
type wireToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function wireFunctionCall `json:"function"`
}

// wireFunctionCall carries a tool call's name and raw argument JSON.
type wireFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// chatResponse is the non-streaming response body.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// chatChoice holds one completion choice.
type chatChoice struct {
	Message      wireMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// streamChunk is one parsed SSE payload.
type streamChunk struct {
	Choices []streamChoice `json:"choices"`
}

// streamChoice contains a delta from the stream.
type streamChoice struct {
	Delta        streamDelta `json:"delta"`
	FinishReason string      `json:"finish_reason"`
}

// streamDelta carries incremental content or tool-call fragments.
type streamDelta struct {
	Content   string               `json:"content"`
	ToolCalls []streamToolCallPart `json:"tool_calls"`
}

// streamToolCallPart is a tool-call fragment keyed by choice index.
type streamToolCallPart struct {
	Index    int              `json:"index"`
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function wireFunctionCall `json:"function"`
}

// buildWireMessages converts council messages into wire payloads.
func buildWireMessages(messages []council.Message) []wireMessage {
	wire := make([]wireMessage, 0, len(messages))
	for _, msg := range messages {
		wire = append(wire, wireMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			Name:       msg.Name,
			ToolCallID: msg.ToolCallID,
			ToolCalls:  buildWireToolCalls(msg.ToolCalls),
		})
	}
	return wire
}

// buildWireToolCalls converts assembled tool calls into wire payloads.
func buildWireToolCalls(calls []council.ToolCall) []wireToolCall {
	if len(calls) == 0 {
		return nil
	}
	wire := make([]wireToolCall, 0, len(calls))
	for _, call := range calls {
		wire = append(wire, wireToolCall{
			ID:   call.ID,
			Type: "function",
			Function: wireFunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	return wire
}

// buildWireTools converts tool declarations into wire payloads.
func buildWireTools(tools []Tool) []wireTool {
	if len(tools) == 0 {
		return nil
	}
	wire := make([]wireTool, 0, len(tools))
	for _, tool := range tools {
		params := tool.Parameters
		if params == nil {
			defaultSchema := Schema{Type: "object"}
			params = &defaultSchema
		}
		wire = append(wire, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  params,
			},
		})
	}
	return wire
}

// toToolCalls converts wire tool calls into assembled council calls.
func toToolCalls(calls []wireToolCall) []council.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	out := make([]council.ToolCall, 0, len(calls))
	for _, call := range calls {
		out = append(out, council.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return out
}
