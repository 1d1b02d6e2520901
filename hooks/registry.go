// Package hooks provides the registry that dispatches execution
// events to observers. A hook registers once and receives every event
// whose interface it implements; hooks observe, they never steer.
package hooks

import (
	"context"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

// Registry holds registered hooks and fires events to them in
// registration order. The zero value is usable.
type Registry struct {
	hooks []any
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a hook. The hook receives every event whose hook
// interface it implements; implementing none registers it as a no-op.
// Returns the registry for chaining.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// FireBeforeExecution dispatches to all BeforeExecutionHook hooks.
func (r *Registry) FireBeforeExecution(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.BeforeExecutionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(parentassist.BeforeExecutionHook); ok {
			hook.OnBeforeExecution(ctx, execCtx, event)
		}
	}
}

// FireAfterExecution dispatches to all AfterExecutionHook hooks.
func (r *Registry) FireAfterExecution(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.AfterExecutionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(parentassist.AfterExecutionHook); ok {
			hook.OnAfterExecution(ctx, execCtx, event)
		}
	}
}

// FireBeforeIteration dispatches to all BeforeIterationHook hooks.
func (r *Registry) FireBeforeIteration(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.BeforeIterationEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(parentassist.BeforeIterationHook); ok {
			hook.OnBeforeIteration(ctx, execCtx, event)
		}
	}
}

// FireAfterIteration dispatches to all AfterIterationHook hooks.
func (r *Registry) FireAfterIteration(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.AfterIterationEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(parentassist.AfterIterationHook); ok {
			hook.OnAfterIteration(ctx, execCtx, event)
		}
	}
}

// FireBeforeModelCall dispatches to all BeforeModelCallHook hooks.
func (r *Registry) FireBeforeModelCall(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.BeforeModelCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(parentassist.BeforeModelCallHook); ok {
			hook.OnBeforeModelCall(ctx, execCtx, event)
		}
	}
}

// FireAfterModelCall dispatches to all AfterModelCallHook hooks.
func (r *Registry) FireAfterModelCall(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.AfterModelCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(parentassist.AfterModelCallHook); ok {
			hook.OnAfterModelCall(ctx, execCtx, event)
		}
	}
}

// FireBeforeToolCall dispatches to all BeforeToolCallHook hooks.
func (r *Registry) FireBeforeToolCall(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.BeforeToolCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(parentassist.BeforeToolCallHook); ok {
			hook.OnBeforeToolCall(ctx, execCtx, event)
		}
	}
}

// FireAfterToolCall dispatches to all AfterToolCallHook hooks.
func (r *Registry) FireAfterToolCall(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.AfterToolCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(parentassist.AfterToolCallHook); ok {
			hook.OnAfterToolCall(ctx, execCtx, event)
		}
	}
}

// Compile-time check that Registry implements HookFirer.
var _ parentassist.HookFirer = (*Registry)(nil)
