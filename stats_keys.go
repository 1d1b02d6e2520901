package parentassist

// Standard key prefix for the assistant's own stat keys. Custom
// metrics should use a different prefix to avoid collisions.
const KeyPrefix = "assistant:"

// Iteration tracking. This key is protected - attempts to modify it
// via IncrCounter are silently ignored; only StartIteration
// increments it.
const KeyIterations = "assistant:iterations"

// Model call tracking keys.
const (
	KeyModelCalls      = "assistant:model_calls"
	KeyModelCallErrors = "assistant:model_call_errors"
	KeyInputTokens     = "assistant:input_tokens"
	KeyOutputTokens    = "assistant:output_tokens"
)

// Tool call tracking keys.
const (
	KeyToolCalls    = "assistant:tool_calls"
	KeyToolCallsFor = "assistant:tool_calls:" // + tool name
	KeyToolNotFound = "assistant:tool_not_found"
)

// Tool error tracking. The consecutive key is a gauge: it rises on
// each failed call and resets to zero on success.
const (
	KeyToolCallErrorsTotal       = "assistant:tool_call_errors_total"
	KeyToolCallErrorsConsecutive = "assistant:tool_call_errors_consecutive"
)

// Parse error tracking (malformed model output). The consecutive key
// is a gauge: it rises on each malformed response and resets on a
// well-formed one.
const (
	KeyParseErrorsTotal       = "assistant:parse_errors_total"
	KeyParseErrorsConsecutive = "assistant:parse_errors_consecutive"
)

// protectedKeys cannot be modified by user code.
var protectedKeys = map[string]bool{
	KeyIterations: true,
}

func isProtectedKey(key string) bool {
	return protectedKeys[key]
}
