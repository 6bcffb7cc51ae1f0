package agent

import (
	"context"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/pkg/llmprovider"
)

// Tool represents a named, schema-validated callable the dispatcher can
// invoke for an intent.
type Tool interface {
	// Name returns the tool name (used in function calling and result maps).
	Name() string

	// Description returns what the tool does (for LLM).
	Description() string

	// Parameters returns JSON schema for tool parameters.
	Parameters() map[string]interface{}

	// Mutating reports whether the tool writes external state. Mutating
	// tools are never re-executed after a side effect has run.
	Mutating() bool

	// Execute runs the tool with given, already-validated arguments.
	Execute(ctx context.Context, args map[string]interface{}) (*Result, error)
}

// Result is a successful tool outcome.
type Result struct {
	// Data is the structured payload keyed into the turn's results.
	Data interface{}

	// Summary is a short user-facing sentence describing what happened.
	Summary string

	// ContextPatch carries the tool's declared context mutations (fresh
	// meal plan id, grocery list id). Nil for read-only tools.
	ContextPatch *chat.ContextPatch
}

// Registry manages the fixed set of tools. Membership is established at
// startup; there is no dynamic discovery.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools in registration order.
func (r *Registry) List() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// ToFunctionDefinitions converts tools to LLM function calling format.
func (r *Registry) ToFunctionDefinitions() []llmprovider.Tool {
	tools := make([]llmprovider.Tool, 0, len(r.tools))
	for _, name := range r.order {
		tool := r.tools[name]
		tools = append(tools, llmprovider.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return tools
}
