package parentassist

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Model is the assistant's language model interface. It wraps
// LangChainGo's llms.Model with normalized token usage and automatic
// tracing: when an ExecutionContext is provided the call is recorded
// as a ModelCallTrace and token counters are updated. Pass nil to
// skip tracing.
type Model interface {
	// GenerateContent generates a completion from the given messages.
	// The call blocks until the model responds, ctx is canceled, or
	// ctx's deadline passes.
	GenerateContent(
		ctx context.Context,
		execCtx *ExecutionContext,
		messages []llms.MessageContent,
		options ...llms.CallOption,
	) (*ContentResponse, error)
}

// ContentResponse is the response from a GenerateContent call.
type ContentResponse struct {
	// Choices contains the generated content choices. The loop reads
	// the first choice.
	Choices []*ContentChoice

	// Info contains generation metadata with normalized token counts.
	Info *GenerationInfo
}

// ContentChoice is a single content choice from the model.
type ContentChoice struct {
	// Content is the textual content of the response.
	Content string

	// StopReason is the reason the model stopped generating.
	StopReason string
}

// GenerationInfo contains metadata about one generation. Token counts
// are normalized across providers (for Ollama: PromptTokens and
// CompletionTokens).
type GenerationInfo struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int

	// Duration is how long the generation took.
	Duration time.Duration
}
