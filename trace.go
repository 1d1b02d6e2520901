package parentassist

import "time"

// TraceEvent is implemented by all trace events recorded on an
// ExecutionContext. Events carry diagnostic detail for logging; they
// never influence control flow.
type TraceEvent interface {
	// TraceEventName returns a stable name identifying the event type.
	TraceEventName() string
}

// BaseTrace carries fields common to all trace events. It is
// populated by ExecutionContext.Trace.
type BaseTrace struct {
	// Time is when the event was recorded.
	Time time.Time `yaml:"time"`

	// Iteration is the 1-indexed iteration the event belongs to
	// (zero for events outside any iteration).
	Iteration int `yaml:"iteration"`
}

func (b *BaseTrace) setBase(now time.Time, iteration int) {
	if b.Time.IsZero() {
		b.Time = now
	}
	b.Iteration = iteration
}

// baseSetter is implemented by events embedding BaseTrace.
type baseSetter interface {
	setBase(now time.Time, iteration int)
}

// IterationStartTrace is recorded when an iteration begins.
type IterationStartTrace struct {
	BaseTrace `yaml:",inline"`
}

func (IterationStartTrace) TraceEventName() string { return "iteration_start" }

// IterationEndTrace is recorded when an iteration completes.
type IterationEndTrace struct {
	BaseTrace `yaml:",inline"`

	Duration time.Duration `yaml:"duration"`
}

func (IterationEndTrace) TraceEventName() string { return "iteration_end" }

// ModelCallTrace is recorded for every language model call.
type ModelCallTrace struct {
	BaseTrace `yaml:",inline"`

	Model        string        `yaml:"model"`
	Response     string        `yaml:"response"`
	InputTokens  int           `yaml:"input_tokens"`
	OutputTokens int           `yaml:"output_tokens"`
	Duration     time.Duration `yaml:"duration"`
	Error        string        `yaml:"error,omitempty"`
}

func (ModelCallTrace) TraceEventName() string { return "model_call" }

// ToolCallTrace is recorded for every tool invocation.
type ToolCallTrace struct {
	BaseTrace `yaml:",inline"`

	Tool     string        `yaml:"tool"`
	Input    string        `yaml:"input"`
	Output   string        `yaml:"output"`
	Duration time.Duration `yaml:"duration"`
	Error    string        `yaml:"error,omitempty"`
}

func (ToolCallTrace) TraceEventName() string { return "tool_call" }

// ToolNotFoundTrace is recorded when the model requests a tool name
// that is not in the registry.
type ToolNotFoundTrace struct {
	BaseTrace `yaml:",inline"`

	Requested string `yaml:"requested"`
}

func (ToolNotFoundTrace) TraceEventName() string { return "tool_not_found" }

// ParseErrorTrace is recorded when a model response cannot be parsed
// into an action or a final answer.
type ParseErrorTrace struct {
	BaseTrace `yaml:",inline"`

	Raw    string `yaml:"raw"`
	Reason string `yaml:"reason"`
}

func (ParseErrorTrace) TraceEventName() string { return "parse_error" }

// TerminationReason indicates why a question's execution ended.
type TerminationReason string

const (
	// TerminationAnswer means the model produced a final answer.
	TerminationAnswer TerminationReason = "answer"

	// TerminationExhausted means the iteration cap was reached.
	TerminationExhausted TerminationReason = "exhausted"

	// TerminationLimitExceeded means a stats limit stopped the loop.
	TerminationLimitExceeded TerminationReason = "limit_exceeded"

	// TerminationError means the model call failed catastrophically.
	TerminationError TerminationReason = "error"

	// TerminationCanceled means the user interrupted the question.
	TerminationCanceled TerminationReason = "canceled"
)
