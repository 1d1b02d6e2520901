package parentassist

// DirectiveKind tags the controller's interpretation of one raw model
// response. All downstream logic switches on this tag, never on raw
// string content.
type DirectiveKind string

const (
	// DirectiveAction means the model requested a tool invocation.
	DirectiveAction DirectiveKind = "action"

	// DirectiveFinalAnswer means the model declared its final answer.
	DirectiveFinalAnswer DirectiveKind = "final_answer"

	// DirectiveMalformed means the response matched neither shape.
	DirectiveMalformed DirectiveKind = "malformed"
)

// Directive is the parsed form of one raw model response. It is
// transient: recomputed every iteration, never stored beyond the step
// it produced.
type Directive struct {
	Kind DirectiveKind

	// Thought is the model's reasoning text, when present. It may
	// accompany any directive kind.
	Thought string

	// Tool and Input are set when Kind is DirectiveAction.
	Tool  string
	Input string

	// Answer is set when Kind is DirectiveFinalAnswer.
	Answer string

	// Raw is always the complete raw model response.
	Raw string
}
