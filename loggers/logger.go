// Package loggers provides hook implementations that record execution
// activity. The LoggerHook writes every event as readable YAML, which
// is the main debugging surface for prompt and parsing problems.
package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"gopkg.in/yaml.v3"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

// LoggerHook implements all hook interfaces and logs everything that
// happens during execution. Structured data is logged as YAML with
// nothing truncated.
type LoggerHook struct {
	out io.Writer
}

// NewLoggerHook creates a LoggerHook that writes to stdout.
func NewLoggerHook() *LoggerHook {
	return &LoggerHook{out: os.Stdout}
}

// NewLoggerHookWithWriter creates a LoggerHook that writes to w.
func NewLoggerHookWithWriter(w io.Writer) *LoggerHook {
	return &LoggerHook{out: w}
}

// logEvent logs an event header with timestamp.
func (h *LoggerHook) logEvent(name string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(h.out, "\n>>> [%s]: %s\n", name, timestamp)
}

func (h *LoggerHook) log(format string, args ...any) {
	fmt.Fprintf(h.out, format+"\n", args...)
}

func (h *LoggerHook) logYAML(v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		h.log("(failed to marshal: %v)", err)
		return
	}
	fmt.Fprint(h.out, string(data))
}

// OnBeforeExecution logs the question being answered.
func (h *LoggerHook) OnBeforeExecution(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.BeforeExecutionEvent,
) {
	h.logEvent("BeforeExecution")
	h.log("================================================================================")
	h.log("EXECUTION STARTED")
	h.log("================================================================================")
	h.log("Name: %s", execCtx.Name())
	h.log("Question: %s", event.Question)
}

// OnAfterExecution logs the outcome and final stats.
func (h *LoggerHook) OnAfterExecution(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.AfterExecutionEvent,
) {
	h.logEvent("AfterExecution")
	h.log("================================================================================")
	h.log("EXECUTION COMPLETED")
	h.log("================================================================================")

	eventData := map[string]any{
		"termination_reason": string(execCtx.TerminationReason()),
		"duration":           event.Duration.String(),
	}
	if event.Outcome != nil {
		eventData["outcome"] = string(event.Outcome.Kind)
	}
	if event.Err != nil {
		eventData["error"] = event.Err.Error()
	}
	h.logYAML(eventData)

	h.log("")
	h.log("Stats:")
	h.logYAML(map[string]any{
		"total_iterations": execCtx.Iteration(),
		"counters":         execCtx.Stats().Counters(),
	})
}

// OnBeforeIteration logs iteration start.
func (h *LoggerHook) OnBeforeIteration(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.BeforeIterationEvent,
) {
	h.logEvent(fmt.Sprintf("BeforeIteration %d", event.Iteration))
	h.log("--------------------------------------------------------------------------------")
	h.log("ITERATION %d START", event.Iteration)
	h.log("--------------------------------------------------------------------------------")
}

// OnAfterIteration logs the iteration's directive and observation.
func (h *LoggerHook) OnAfterIteration(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.AfterIterationEvent,
) {
	h.logEvent(fmt.Sprintf("AfterIteration %d", event.Iteration))
	h.log("--------------------------------------------------------------------------------")
	h.log("ITERATION %d END", event.Iteration)
	h.log("--------------------------------------------------------------------------------")
	h.log("Duration: %s", event.Duration)

	if event.Directive != nil {
		h.log("")
		h.log("Directive:")
		directiveData := map[string]any{
			"kind": string(event.Directive.Kind),
		}
		if event.Directive.Thought != "" {
			directiveData["thought"] = event.Directive.Thought
		}
		if event.Directive.Tool != "" {
			directiveData["tool"] = event.Directive.Tool
			directiveData["input"] = event.Directive.Input
		}
		if event.Directive.Answer != "" {
			directiveData["answer"] = event.Directive.Answer
		}
		h.logYAML(directiveData)
	}
	if event.Observation != "" {
		h.log("")
		h.log("Observation:")
		for _, line := range strings.Split(event.Observation, "\n") {
			h.log("  %s", line)
		}
	}
}

// OnBeforeModelCall logs the request messages.
func (h *LoggerHook) OnBeforeModelCall(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.BeforeModelCallEvent,
) {
	h.logEvent(fmt.Sprintf("BeforeModelCall: %s", event.Model))

	h.log("Request:")
	for i, msg := range event.Messages {
		h.log("  [%d] Role: %s", i, msg.Role)
		for _, part := range msg.Parts {
			if tc, ok := part.(llms.TextContent); ok {
				h.log("      Content:")
				for _, line := range strings.Split(tc.Text, "\n") {
					h.log("        %s", line)
				}
			}
		}
	}
}

// OnAfterModelCall logs the response, or the error.
func (h *LoggerHook) OnAfterModelCall(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.AfterModelCallEvent,
) {
	h.logEvent(fmt.Sprintf("AfterModelCall: %s (duration: %s)", event.Model, event.Duration))

	if event.Err != nil {
		h.log("Error: %v", event.Err)
		return
	}

	if event.Response != nil && len(event.Response.Choices) > 0 {
		for i, choice := range event.Response.Choices {
			h.log("Choice[%d]:", i)
			if choice.Content != "" {
				h.log("  Content:")
				for _, line := range strings.Split(choice.Content, "\n") {
					h.log("    %s", line)
				}
			}
			if choice.StopReason != "" {
				h.log("  StopReason: %s", choice.StopReason)
			}
		}
	}

	if event.Response != nil && event.Response.Info != nil {
		info := event.Response.Info
		h.log("Tokens: input=%d, output=%d, total=%d",
			info.InputTokens, info.OutputTokens, info.TotalTokens)
	}
}

// OnBeforeToolCall logs the tool call before execution.
func (h *LoggerHook) OnBeforeToolCall(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.BeforeToolCallEvent,
) {
	h.logEvent(fmt.Sprintf("BeforeToolCall: %s", event.Tool))
	h.log("Input:")
	for _, line := range strings.Split(event.Input, "\n") {
		h.log("  %s", line)
	}
}

// OnAfterToolCall logs the tool result or error.
func (h *LoggerHook) OnAfterToolCall(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	event parentassist.AfterToolCallEvent,
) {
	h.logEvent(fmt.Sprintf("AfterToolCall: %s (duration: %s)", event.Tool, event.Duration))

	if event.Err != nil {
		h.log("Error: %v", event.Err)
		return
	}
	h.log("Output:")
	for _, line := range strings.Split(event.Output, "\n") {
		h.log("  %s", line)
	}
}

// Compile-time checks that LoggerHook implements all hook interfaces.
var (
	_ parentassist.BeforeExecutionHook = (*LoggerHook)(nil)
	_ parentassist.AfterExecutionHook  = (*LoggerHook)(nil)
	_ parentassist.BeforeIterationHook = (*LoggerHook)(nil)
	_ parentassist.AfterIterationHook  = (*LoggerHook)(nil)
	_ parentassist.BeforeModelCallHook = (*LoggerHook)(nil)
	_ parentassist.AfterModelCallHook  = (*LoggerHook)(nil)
	_ parentassist.BeforeToolCallHook  = (*LoggerHook)(nil)
	_ parentassist.AfterToolCallHook   = (*LoggerHook)(nil)
)
