package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// ToolPlugin is implemented by packages that contribute tools
type ToolPlugin interface {
	RegisterTools(gk *genkit.Genkit, registry *Registry)
}

// ToolExecutor runs one tool invocation from loosely typed arguments
type ToolExecutor func(ctx context.Context, args map[string]interface{}) (interface{}, error)

type entry struct {
	tool     ai.Tool
	executor ToolExecutor
}

// Registry holds the tools exposed to the model, keyed by name.
// Registration order is preserved.
type Registry struct {
	order   []string
	entries map[string]entry
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool with its executor. Re-registering a name
// replaces the previous entry and keeps its position.
func (r *Registry) Register(tool ai.Tool, executor ToolExecutor) {
	name := tool.Definition().Name
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = entry{tool: tool, executor: executor}
}

// GetTools returns the registered tools in registration order
func (r *Registry) GetTools() []ai.Tool {
	registered := make([]ai.Tool, 0, len(r.order))
	for _, name := range r.order {
		registered = append(registered, r.entries[name].tool)
	}
	return registered
}

// Names returns the registered tool names in registration order
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// ExecuteTool runs a registered tool by name
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return e.executor(ctx, args)
}
