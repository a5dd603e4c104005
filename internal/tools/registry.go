package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"council/internal/gateway"
)

// InvalidArguments is the tool result for undecodable argument JSON.
// The loop never aborts on malformed arguments.
const InvalidArguments = "Error: invalid tool arguments"

// Handler executes a tool with decoded arguments and returns the result
// string handed back to the model. Failures are reported in the string.
type Handler func(ctx context.Context, args Args) string

// Tool pairs a declared schema with its handler.
type Tool struct {
	Definition gateway.Tool
	Handler    Handler
}

// Registry is an immutable set of tools configured at startup.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry builds a registry from the given tools.
func NewRegistry(entries ...Tool) *Registry {
	tools := make(map[string]Tool, len(entries))
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, exists := tools[entry.Definition.Name]; exists {
			continue
		}
		tools[entry.Definition.Name] = entry
		order = append(order, entry.Definition.Name)
	}
	return &Registry{tools: tools, order: order}
}

// Definitions lists the declared tool schemas in registration order.
func (r *Registry) Definitions() []gateway.Tool {
	defs := make([]gateway.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// Execute dispatches a call to the named tool. Every call produces a
// result string; unknown tools and bad arguments are reported as results.
func (r *Registry) Execute(ctx context.Context, name, argumentsJSON string) string {
	tool, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Unknown tool: %s", name)
	}
	args := Args{}
	if argumentsJSON != "" {
		if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
			return InvalidArguments
		}
	}
	return tool.Handler(ctx, args)
}
