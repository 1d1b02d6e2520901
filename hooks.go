package parentassist

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// Hook Events
// -----------------------------------------------------------------------------

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// BeforeExecutionEvent is emitted once before the first iteration.
type BeforeExecutionEvent struct {
	// Question is the trimmed user question.
	Question string
}

func (BeforeExecutionEvent) hookEvent() {}

// AfterExecutionEvent is emitted once after the loop terminates. It
// is always emitted if BeforeExecutionEvent was, even on error.
type AfterExecutionEvent struct {
	// Outcome is the terminal outcome (nil when Err is set).
	Outcome *Outcome

	// Err is set when the question ended with an error (e.g. user
	// interrupt).
	Err error

	// Duration is the total execution time.
	Duration time.Duration
}

func (AfterExecutionEvent) hookEvent() {}

// BeforeIterationEvent is emitted before each iteration.
type BeforeIterationEvent struct {
	// Iteration is the current iteration number (1-indexed).
	Iteration int
}

func (BeforeIterationEvent) hookEvent() {}

// AfterIterationEvent is emitted after each iteration.
type AfterIterationEvent struct {
	// Iteration is the iteration number (1-indexed).
	Iteration int

	// Directive is the parsed directive this iteration produced.
	Directive *Directive

	// Observation is the observation fed back to the model, empty on
	// the final iteration.
	Observation string

	// Duration is how long the iteration took.
	Duration time.Duration
}

func (AfterIterationEvent) hookEvent() {}

// BeforeModelCallEvent is emitted before each model call.
type BeforeModelCallEvent struct {
	// Model is the model identifier.
	Model string

	// Messages are the messages being sent.
	Messages []llms.MessageContent
}

func (BeforeModelCallEvent) hookEvent() {}

// AfterModelCallEvent is emitted after each model call completes.
type AfterModelCallEvent struct {
	// Model is the model identifier.
	Model string

	// Response is the model's response (nil on error).
	Response *ContentResponse

	// Duration is how long the call took.
	Duration time.Duration

	// Err is any error that occurred.
	Err error
}

func (AfterModelCallEvent) hookEvent() {}

// BeforeToolCallEvent is emitted before each tool invocation.
type BeforeToolCallEvent struct {
	// Tool is the registered tool name.
	Tool string

	// Input is the action input passed to the tool.
	Input string
}

func (BeforeToolCallEvent) hookEvent() {}

// AfterToolCallEvent is emitted after each tool invocation.
type AfterToolCallEvent struct {
	// Tool is the registered tool name.
	Tool string

	// Input is the action input that was passed.
	Input string

	// Output is the tool's output (empty on error).
	Output string

	// Duration is how long the call took.
	Duration time.Duration

	// Err is any error that occurred.
	Err error
}

func (AfterToolCallEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// A hook implements any subset of these interfaces and registers with
// hooks.Registry. Hooks are called in registration order; for paired
// hooks the After hook is always called if the Before hook was, even
// on error. Hooks must not return errors; they observe, they do not
// steer.

// BeforeExecutionHook observes the start of a question.
type BeforeExecutionHook interface {
	OnBeforeExecution(ctx context.Context, execCtx *ExecutionContext, event BeforeExecutionEvent)
}

// AfterExecutionHook observes the end of a question.
type AfterExecutionHook interface {
	OnAfterExecution(ctx context.Context, execCtx *ExecutionContext, event AfterExecutionEvent)
}

// BeforeIterationHook observes the start of each iteration.
type BeforeIterationHook interface {
	OnBeforeIteration(ctx context.Context, execCtx *ExecutionContext, event BeforeIterationEvent)
}

// AfterIterationHook observes the end of each iteration.
type AfterIterationHook interface {
	OnAfterIteration(ctx context.Context, execCtx *ExecutionContext, event AfterIterationEvent)
}

// BeforeModelCallHook observes model calls before they are made.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, execCtx *ExecutionContext, event BeforeModelCallEvent)
}

// AfterModelCallHook observes completed model calls.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, execCtx *ExecutionContext, event AfterModelCallEvent)
}

// BeforeToolCallHook observes tool invocations before they run.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, execCtx *ExecutionContext, event BeforeToolCallEvent)
}

// AfterToolCallHook observes completed tool invocations.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, execCtx *ExecutionContext, event AfterToolCallEvent)
}

// -----------------------------------------------------------------------------
// HookFirer
// -----------------------------------------------------------------------------

// HookFirer dispatches model/tool call events to registered hooks.
// It is installed on the ExecutionContext so components (the model
// wrapper, tool dispatch) can fire hooks without importing the hooks
// package. hooks.Registry implements it.
type HookFirer interface {
	FireBeforeModelCall(ctx context.Context, execCtx *ExecutionContext, event BeforeModelCallEvent)
	FireAfterModelCall(ctx context.Context, execCtx *ExecutionContext, event AfterModelCallEvent)
	FireBeforeToolCall(ctx context.Context, execCtx *ExecutionContext, event BeforeToolCallEvent)
	FireAfterToolCall(ctx context.Context, execCtx *ExecutionContext, event AfterToolCallEvent)
}

// noopHookFirer is returned by ExecutionContext.Hooks when no firer
// is installed.
type noopHookFirer struct{}

func (noopHookFirer) FireBeforeModelCall(context.Context, *ExecutionContext, BeforeModelCallEvent) {
}
func (noopHookFirer) FireAfterModelCall(context.Context, *ExecutionContext, AfterModelCallEvent) {}
func (noopHookFirer) FireBeforeToolCall(context.Context, *ExecutionContext, BeforeToolCallEvent) {}
func (noopHookFirer) FireAfterToolCall(context.Context, *ExecutionContext, AfterToolCallEvent)   {}
