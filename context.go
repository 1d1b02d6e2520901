package parentassist

import (
	"context"
	"sync"
	"time"
)

// ExecutionContext carries everything the loop accumulates while
// answering one question: the transcript, iteration count, stats with
// limit checking, trace events and the termination state. One
// ExecutionContext is created per question and exclusively owned by
// that question's loop.
//
// The embedded Go context is canceled when a limit is exceeded, so
// in-flight model or tool calls unwind promptly.
type ExecutionContext struct {
	mu sync.Mutex

	goCtx  context.Context
	cancel context.CancelFunc

	name       string
	transcript *Transcript
	stats      *ExecutionStats
	hookFirer  HookFirer

	limits   []Limit
	exceeded *Limit

	events    []TraceEvent
	iteration int

	startTime time.Time
	endTime   time.Time

	terminationReason TerminationReason
	err               error
}

// NewExecutionContext creates an ExecutionContext for one question.
// Default limits (see DefaultLimits) are applied; replace them with
// SetLimits before the loop starts.
func NewExecutionContext(
	ctx context.Context,
	name string,
	transcript *Transcript,
) *ExecutionContext {
	goCtx, cancel := context.WithCancel(ctx)
	execCtx := &ExecutionContext{
		goCtx:      goCtx,
		cancel:     cancel,
		name:       name,
		transcript: transcript,
		limits:     DefaultLimits(),
		startTime:  time.Now(),
	}
	execCtx.stats = newExecutionStatsWithContext(execCtx)
	return execCtx
}

// Context returns the Go context for this execution. It is canceled
// on user interrupt (via the parent) or when a limit is exceeded.
func (ctx *ExecutionContext) Context() context.Context {
	return ctx.goCtx
}

// Name returns the execution's name, used in diagnostics.
func (ctx *ExecutionContext) Name() string {
	return ctx.name
}

// Transcript returns the transcript owned by this execution.
func (ctx *ExecutionContext) Transcript() *Transcript {
	return ctx.transcript
}

// Stats returns the execution's stats.
func (ctx *ExecutionContext) Stats() *ExecutionStats {
	return ctx.stats
}

// SetHookFirer installs the firer used by components (model
// wrappers, tool dispatch) to emit model/tool call hooks.
func (ctx *ExecutionContext) SetHookFirer(firer HookFirer) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.hookFirer = firer
}

// Hooks returns the installed hook firer, or a no-op firer when none
// is installed, so callers never need a nil check.
func (ctx *ExecutionContext) Hooks() HookFirer {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.hookFirer == nil {
		return noopHookFirer{}
	}
	return ctx.hookFirer
}

// SetLimits replaces the limits applied to this execution.
func (ctx *ExecutionContext) SetLimits(limits []Limit) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.limits = limits
}

// Limits returns the limits applied to this execution.
func (ctx *ExecutionContext) Limits() []Limit {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.limits
}

// ExceededLimit returns the first exceeded limit, or nil.
func (ctx *ExecutionContext) ExceededLimit() *Limit {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.exceeded
}

// limitExceeded records the exceeded limit and cancels the execution.
// Only the first exceeded limit is kept.
func (ctx *ExecutionContext) limitExceeded(limit Limit) {
	ctx.mu.Lock()
	if ctx.exceeded == nil {
		ctx.exceeded = &limit
	}
	ctx.mu.Unlock()
	ctx.cancel()
}

// Iteration returns the current iteration number (1-indexed, zero
// before the first iteration).
func (ctx *ExecutionContext) Iteration() int {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.iteration
}

// StartIteration increments the iteration counter and records an
// IterationStartTrace.
func (ctx *ExecutionContext) StartIteration() {
	ctx.mu.Lock()
	ctx.iteration++
	ctx.mu.Unlock()

	ctx.stats.incrCounter(KeyIterations, 1)
	ctx.Trace(&IterationStartTrace{})
}

// EndIteration records an IterationEndTrace with the duration.
func (ctx *ExecutionContext) EndIteration(duration time.Duration) {
	ctx.Trace(&IterationEndTrace{Duration: duration})
}

// Trace records a trace event, stamping its BaseTrace fields.
func (ctx *ExecutionContext) Trace(event TraceEvent) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if setter, ok := event.(baseSetter); ok {
		setter.setBase(time.Now(), ctx.iteration)
	}
	ctx.events = append(ctx.events, event)
}

// Events returns a copy of all recorded trace events in order.
func (ctx *ExecutionContext) Events() []TraceEvent {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	out := make([]TraceEvent, len(ctx.events))
	copy(out, ctx.events)
	return out
}

// SetTermination records why the execution ended. The first call
// wins; later calls are ignored.
func (ctx *ExecutionContext) SetTermination(reason TerminationReason, err error) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.terminationReason != "" {
		return
	}
	ctx.terminationReason = reason
	ctx.err = err
	ctx.endTime = time.Now()
}

// TerminationReason returns why the execution ended (empty while
// still running).
func (ctx *ExecutionContext) TerminationReason() TerminationReason {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.terminationReason
}

// Error returns the error recorded at termination, if any.
func (ctx *ExecutionContext) Error() error {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.err
}

// StartTime returns when the execution began.
func (ctx *ExecutionContext) StartTime() time.Time {
	return ctx.startTime
}

// Duration returns how long the execution has run (final once
// terminated).
func (ctx *ExecutionContext) Duration() time.Duration {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.endTime.IsZero() {
		return time.Since(ctx.startTime)
	}
	return ctx.endTime.Sub(ctx.startTime)
}
