// Package models adapts langchaingo language models to the Model
// interface used by the reasoning loop, adding hook firing, tracing
// and stats accounting around every call.
package models

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

// LCGWrapper wraps an llms.Model and implements the Model interface.
// It normalizes token usage across providers and traces model calls
// when an ExecutionContext is provided.
//
// Example usage:
//
//	llm, _ := ollama.New(ollama.WithModel("qwen3:8b"))
//	model := models.NewLCGWrapper(llm).WithModelName("qwen3:8b")
//
//	response, err := model.GenerateContent(ctx, execCtx, messages)
type LCGWrapper struct {
	model       llms.Model
	modelName   string // Optional model name for tracing
	defaultOpts []llms.CallOption
}

// NewLCGWrapper creates a new LCGWrapper wrapping the given llms.Model.
func NewLCGWrapper(model llms.Model) *LCGWrapper {
	return &LCGWrapper{
		model: model,
	}
}

// WithModelName sets the model name used in trace events.
// Returns the model for chaining.
func (m *LCGWrapper) WithModelName(name string) *LCGWrapper {
	m.modelName = name
	return m
}

// WithDefaultOptions sets call options applied to every call, before
// per-call options so callers can override them.
func (m *LCGWrapper) WithDefaultOptions(options ...llms.CallOption) *LCGWrapper {
	m.defaultOpts = options
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LCGWrapper) Unwrap() llms.Model {
	return m.model
}

// GenerateContent implements Model.GenerateContent. When execCtx is
// provided, the call fires model-call hooks, records a trace event
// and updates call and token counters.
func (m *LCGWrapper) GenerateContent(
	ctx context.Context,
	execCtx *parentassist.ExecutionContext,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*parentassist.ContentResponse, error) {
	if execCtx != nil {
		execCtx.Hooks().FireBeforeModelCall(ctx, execCtx, parentassist.BeforeModelCallEvent{
			Model:    m.modelName,
			Messages: messages,
		})
	}

	opts := make([]llms.CallOption, 0, len(m.defaultOpts)+len(options))
	opts = append(opts, m.defaultOpts...)
	opts = append(opts, options...)

	startTime := time.Now()
	lcgResponse, err := m.model.GenerateContent(ctx, messages, opts...)
	duration := time.Since(startTime)

	var response *parentassist.ContentResponse
	if lcgResponse != nil {
		response = convertLCGResponse(lcgResponse, duration)
	}

	if execCtx != nil {
		execCtx.Hooks().FireAfterModelCall(ctx, execCtx, parentassist.AfterModelCallEvent{
			Model:    m.modelName,
			Response: response,
			Duration: duration,
			Err:      err,
		})

		trace := &parentassist.ModelCallTrace{
			Model:    m.modelName,
			Duration: duration,
		}
		if err != nil {
			trace.Error = err.Error()
		}

		stats := execCtx.Stats()
		stats.IncrCounter(parentassist.KeyModelCalls, 1)
		if err != nil {
			stats.IncrCounter(parentassist.KeyModelCallErrors, 1)
		}
		if response != nil {
			if len(response.Choices) > 0 {
				trace.Response = response.Choices[0].Content
			}
			if response.Info != nil {
				trace.InputTokens = response.Info.InputTokens
				trace.OutputTokens = response.Info.OutputTokens
				stats.IncrCounter(parentassist.KeyInputTokens, int64(response.Info.InputTokens))
				stats.IncrCounter(parentassist.KeyOutputTokens, int64(response.Info.OutputTokens))
			}
		}
		execCtx.Trace(trace)
	}

	return response, err
}

// convertLCGResponse converts an llms.ContentResponse to a
// ContentResponse with normalized token usage.
func convertLCGResponse(
	lcgResponse *llms.ContentResponse,
	duration time.Duration,
) *parentassist.ContentResponse {
	response := &parentassist.ContentResponse{
		Choices: make([]*parentassist.ContentChoice, len(lcgResponse.Choices)),
		Info:    &parentassist.GenerationInfo{Duration: duration},
	}

	for i, choice := range lcgResponse.Choices {
		response.Choices[i] = &parentassist.ContentChoice{
			Content:    choice.Content,
			StopReason: choice.StopReason,
		}
	}

	if len(lcgResponse.Choices) > 0 && lcgResponse.Choices[0].GenerationInfo != nil {
		rawInfo := lcgResponse.Choices[0].GenerationInfo
		response.Info.InputTokens = extractInputTokens(rawInfo)
		response.Info.OutputTokens = extractOutputTokens(rawInfo)
		response.Info.TotalTokens = extractTotalTokens(
			rawInfo,
			response.Info.InputTokens,
			response.Info.OutputTokens,
		)
	}

	return response
}

// extractInputTokens extracts input/prompt token count from
// GenerationInfo. Handles the key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "input_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractOutputTokens extracts output/completion token count from
// GenerationInfo.
func extractOutputTokens(info map[string]any) int {
	// OpenAI / Ollama
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "output_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractTotalTokens extracts total token count or computes it.
func extractTotalTokens(info map[string]any, input, output int) int {
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

// getIntFromMap extracts an int value from a map, handling various
// numeric types.
func getIntFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

// Compile-time check that LCGWrapper implements Model.
var _ parentassist.Model = (*LCGWrapper)(nil)
