// Package tt provides shared test doubles for the assistant's test
// suites.
package tt

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

// -----------------------------------------------------------------------------
// MockModel - implements Model with proper hook firing
// -----------------------------------------------------------------------------

// MockModel is a configurable mock that implements Model. It fires
// BeforeModelCall and AfterModelCall hooks and updates call counters
// the way the production wrapper does.
type MockModel struct {
	name      string
	responses []*parentassist.ContentResponse
	errors    []error
	callCount int

	// CapturedMessages stores the messages passed to each
	// GenerateContent call.
	CapturedMessages [][]llms.MessageContent
}

// NewMockModel creates a new MockModel with the default name "test-model".
func NewMockModel() *MockModel {
	return &MockModel{name: "test-model"}
}

// WithName sets the model name used in hook events.
func (m *MockModel) WithName(name string) *MockModel {
	m.name = name
	return m
}

// AddResponse queues a response with the specified content and token
// counts.
func (m *MockModel) AddResponse(content string, inputTokens, outputTokens int) *MockModel {
	m.responses = append(m.responses, &parentassist.ContentResponse{
		Choices: []*parentassist.ContentChoice{{Content: content}},
		Info: &parentassist.GenerationInfo{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
		},
	})
	return m
}

// AddRawResponse queues a raw ContentResponse. Use this for full
// control over the response structure (e.g. empty Choices slice).
func (m *MockModel) AddRawResponse(resp *parentassist.ContentResponse) *MockModel {
	m.responses = append(m.responses, resp)
	return m
}

// AddError queues an error for the next call.
func (m *MockModel) AddError(err error) *MockModel {
	for len(m.responses) <= len(m.errors) {
		m.responses = append(m.responses, nil)
	}
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times GenerateContent was called.
func (m *MockModel) CallCount() int {
	return m.callCount
}

// GenerateContent implements Model.
func (m *MockModel) GenerateContent(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	messages []llms.MessageContent,
	_ ...llms.CallOption,
) (*parentassist.ContentResponse, error) {
	idx := m.callCount
	m.callCount++

	m.CapturedMessages = append(m.CapturedMessages, messages)

	if execCtx != nil {
		execCtx.Hooks().FireBeforeModelCall(ctx, execCtx, parentassist.BeforeModelCallEvent{
			Model:    m.name,
			Messages: messages,
		})
	}

	startTime := time.Now()

	// Context cancellation behaves like a real client.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var err error
	if idx < len(m.errors) && m.errors[idx] != nil {
		err = m.errors[idx]
	}

	var resp *parentassist.ContentResponse
	if err == nil {
		if idx < len(m.responses) && m.responses[idx] != nil {
			resp = m.responses[idx]
		} else {
			// Default: return a final answer so unconfigured calls
			// terminate the loop.
			resp = &parentassist.ContentResponse{
				Choices: []*parentassist.ContentChoice{
					{Content: "Thought: done\nFinal Answer: done"},
				},
				Info: &parentassist.GenerationInfo{InputTokens: 10, OutputTokens: 5},
			}
		}
	}

	duration := time.Since(startTime)

	if execCtx != nil {
		execCtx.Hooks().FireAfterModelCall(ctx, execCtx, parentassist.AfterModelCallEvent{
			Model:    m.name,
			Response: resp,
			Duration: duration,
			Err:      err,
		})

		stats := execCtx.Stats()
		stats.IncrCounter(parentassist.KeyModelCalls, 1)
		if err != nil {
			stats.IncrCounter(parentassist.KeyModelCallErrors, 1)
		} else if resp != nil && resp.Info != nil {
			stats.IncrCounter(parentassist.KeyInputTokens, int64(resp.Info.InputTokens))
			stats.IncrCounter(parentassist.KeyOutputTokens, int64(resp.Info.OutputTokens))
		}
	}

	return resp, err
}

var _ parentassist.Model = (*MockModel)(nil)

// -----------------------------------------------------------------------------
// Tool helpers
// -----------------------------------------------------------------------------

// StaticTool returns a tool that always returns output.
func StaticTool(name, output string) parentassist.Tool {
	return parentassist.NewToolFunc(name, "test tool "+name,
		func(context.Context, string) (string, error) {
			return output, nil
		})
}

// EchoTool returns a tool that echoes its input.
func EchoTool(name string) parentassist.Tool {
	return parentassist.NewToolFunc(name, "test tool "+name,
		func(_ context.Context, input string) (string, error) {
			return "echo: " + input, nil
		})
}

// FailingTool returns a tool that always fails with err.
func FailingTool(name string, err error) parentassist.Tool {
	return parentassist.NewToolFunc(name, "test tool "+name,
		func(context.Context, string) (string, error) {
			return "", err
		})
}

// RecordingTool wraps a tool and records every input it is called
// with.
type RecordingTool struct {
	parentassist.Tool

	// Inputs holds the inputs of all calls in order.
	Inputs []string
}

// NewRecordingTool wraps tool with input recording.
func NewRecordingTool(tool parentassist.Tool) *RecordingTool {
	return &RecordingTool{Tool: tool}
}

// Call implements Tool.
func (r *RecordingTool) Call(ctx context.Context, input string) (string, error) {
	r.Inputs = append(r.Inputs, input)
	return r.Tool.Call(ctx, input)
}
