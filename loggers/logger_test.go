package loggers

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

func newExecCtx() *parentassist.ExecutionContext {
	return parentassist.NewExecutionContext(
		context.Background(), "question", parentassist.NewTranscript("q"),
	)
}

func TestLoggerHook_Execution(t *testing.T) {
	var buf bytes.Buffer
	hook := NewLoggerHookWithWriter(&buf)
	execCtx := newExecCtx()

	hook.OnBeforeExecution(context.Background(), execCtx,
		parentassist.BeforeExecutionEvent{Question: "How to handle tantrums?"})

	execCtx.SetTermination(parentassist.TerminationAnswer, nil)
	hook.OnAfterExecution(context.Background(), execCtx,
		parentassist.AfterExecutionEvent{
			Outcome:  parentassist.AnswerOutcome("stay calm"),
			Duration: 3 * time.Second,
		})

	out := buf.String()
	assert.Contains(t, out, "EXECUTION STARTED")
	assert.Contains(t, out, "How to handle tantrums?")
	assert.Contains(t, out, "EXECUTION COMPLETED")
	assert.Contains(t, out, "termination_reason: answer")
	assert.Contains(t, out, "outcome: answer")
}

func TestLoggerHook_ModelCall(t *testing.T) {
	var buf bytes.Buffer
	hook := NewLoggerHookWithWriter(&buf)
	execCtx := newExecCtx()

	hook.OnBeforeModelCall(context.Background(), execCtx,
		parentassist.BeforeModelCallEvent{
			Model: "qwen3:8b",
			Messages: []llms.MessageContent{
				{
					Role:  llms.ChatMessageTypeHuman,
					Parts: []llms.ContentPart{llms.TextContent{Text: "hello\nworld"}},
				},
			},
		})
	hook.OnAfterModelCall(context.Background(), execCtx,
		parentassist.AfterModelCallEvent{
			Model: "qwen3:8b",
			Response: &parentassist.ContentResponse{
				Choices: []*parentassist.ContentChoice{{Content: "Final Answer: hi"}},
				Info:    &parentassist.GenerationInfo{InputTokens: 10, OutputTokens: 4, TotalTokens: 14},
			},
			Duration: time.Second,
		})

	out := buf.String()
	assert.Contains(t, out, "BeforeModelCall: qwen3:8b")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
	assert.Contains(t, out, "Final Answer: hi")
	assert.Contains(t, out, "Tokens: input=10, output=4, total=14")
}

func TestLoggerHook_ModelCallError(t *testing.T) {
	var buf bytes.Buffer
	hook := NewLoggerHookWithWriter(&buf)

	hook.OnAfterModelCall(context.Background(), newExecCtx(),
		parentassist.AfterModelCallEvent{
			Model: "qwen3:8b",
			Err:   errors.New("connection refused"),
		})

	assert.Contains(t, buf.String(), "Error: connection refused")
}

func TestLoggerHook_ToolCall(t *testing.T) {
	var buf bytes.Buffer
	hook := NewLoggerHookWithWriter(&buf)
	execCtx := newExecCtx()

	hook.OnBeforeToolCall(context.Background(), execCtx,
		parentassist.BeforeToolCallEvent{Tool: "web_search", Input: "toddler sleep"})
	hook.OnAfterToolCall(context.Background(), execCtx,
		parentassist.AfterToolCallEvent{
			Tool:     "web_search",
			Output:   "Abstract: toddlers sleep a lot",
			Duration: 600 * time.Millisecond,
		})

	out := buf.String()
	assert.Contains(t, out, "BeforeToolCall: web_search")
	assert.Contains(t, out, "toddler sleep")
	assert.Contains(t, out, "Abstract: toddlers sleep a lot")
}

func TestLoggerHook_Iteration(t *testing.T) {
	var buf bytes.Buffer
	hook := NewLoggerHookWithWriter(&buf)
	execCtx := newExecCtx()

	hook.OnBeforeIteration(context.Background(), execCtx,
		parentassist.BeforeIterationEvent{Iteration: 2})
	hook.OnAfterIteration(context.Background(), execCtx,
		parentassist.AfterIterationEvent{
			Iteration: 2,
			Directive: &parentassist.Directive{
				Kind:    parentassist.DirectiveAction,
				Thought: "check the book",
				Tool:    "book_knowledge",
				Input:   "lying",
			},
			Observation: "the book says...",
			Duration:    time.Second,
		})

	out := buf.String()
	assert.Contains(t, out, "ITERATION 2 START")
	assert.Contains(t, out, "ITERATION 2 END")
	assert.Contains(t, out, "kind: action")
	assert.Contains(t, out, "tool: book_knowledge")
	assert.Contains(t, out, "the book says...")
}
