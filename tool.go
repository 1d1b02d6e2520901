package parentassist

import (
	"context"
	"fmt"
	"strings"
)

// Tool is a named external capability the assistant can invoke. The
// description is shown to the model so it can choose between tools.
//
// Tools take and return plain text. Call must honor ctx cancellation
// and deadlines; failures should be returned as *ToolError so the
// loop can show the model a sanitized description instead of raw
// internal detail.
type Tool interface {
	// Name returns the identifier the model uses in Action lines.
	Name() string

	// Description returns a capability summary for the model.
	Description() string

	// Call executes the tool with the given input text.
	Call(ctx context.Context, input string) (string, error)
}

// ToolError is a failure inside a tool invocation. Message is safe to
// show to the model; Err carries the underlying cause for diagnostics
// only and is never rendered into an observation.
type ToolError struct {
	Tool    string
	Message string
	Err     error
}

// NewToolError creates a ToolError for the named tool.
func NewToolError(tool, message string, err error) *ToolError {
	return &ToolError{Tool: tool, Message: message, Err: err}
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tool %s: %s: %v", e.Tool, e.Message, e.Err)
	}
	return fmt.Sprintf("tool %s: %s", e.Tool, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ToolFunc adapts a plain function into a Tool.
type ToolFunc struct {
	name        string
	description string
	fn          func(ctx context.Context, input string) (string, error)
}

// NewToolFunc creates a Tool from a function.
func NewToolFunc(
	name, description string,
	fn func(ctx context.Context, input string) (string, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		fn:          fn,
	}
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Description returns the capability summary for the model.
func (t *ToolFunc) Description() string {
	return t.description
}

// Call executes the wrapped function.
func (t *ToolFunc) Call(ctx context.Context, input string) (string, error) {
	return t.fn(ctx, input)
}

// Registry maps tool names to tools. It is built once at startup and
// read-only afterwards, so it is safe to share across questions.
//
// Lookup is tolerant of surrounding whitespace and case differences
// in the requested name. To guarantee a tolerant lookup can never
// land on two distinct tools, Register rejects any name that
// collides with an already registered one under the same
// normalization.
type Registry struct {
	tools []Tool
	byKey map[string]Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey: make(map[string]Tool),
	}
}

// normalizeToolName is the canonical form used for lookup: trimmed
// and case-folded.
func normalizeToolName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a tool. It returns an error when the name is empty
// after trimming, or when it collides with a registered tool under
// trim+case-fold normalization.
func (r *Registry) Register(tool Tool) error {
	key := normalizeToolName(tool.Name())
	if key == "" {
		return fmt.Errorf("register tool: empty name")
	}
	if existing, ok := r.byKey[key]; ok {
		return fmt.Errorf(
			"register tool %q: name collides with registered tool %q",
			tool.Name(), existing.Name(),
		)
	}
	r.byKey[key] = tool
	r.tools = append(r.tools, tool)
	return nil
}

// Lookup finds a tool by name, tolerating surrounding whitespace and
// case differences. Anything short of a match under that
// normalization is "not found" - there is no fuzzy matching.
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.byKey[normalizeToolName(name)]
	return tool, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name()
	}
	return names
}
