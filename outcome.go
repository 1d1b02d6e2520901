package parentassist

// OutcomeKind tags the terminal result of one loop invocation.
type OutcomeKind string

const (
	// OutcomeAnswer means the model produced a final answer.
	OutcomeAnswer OutcomeKind = "answer"

	// OutcomeExhausted means the iteration limit (or a runaway-error
	// limit) was reached without a final answer. This is a defined
	// terminal state, not an error.
	OutcomeExhausted OutcomeKind = "exhausted"

	// OutcomeFailed means the language model itself failed
	// mid-question. The session may continue with new questions.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is returned exactly once per question.
type Outcome struct {
	Kind OutcomeKind

	// Answer is the final answer text. Set only for OutcomeAnswer.
	Answer string

	// Reason is a sanitized failure description, safe to show the
	// user. Set only for OutcomeFailed.
	Reason string
}

// AnswerOutcome creates an OutcomeAnswer with the given text.
func AnswerOutcome(text string) *Outcome {
	return &Outcome{Kind: OutcomeAnswer, Answer: text}
}

// ExhaustedOutcome creates an OutcomeExhausted.
func ExhaustedOutcome() *Outcome {
	return &Outcome{Kind: OutcomeExhausted}
}

// FailedOutcome creates an OutcomeFailed with a sanitized reason.
func FailedOutcome(reason string) *Outcome {
	return &Outcome{Kind: OutcomeFailed, Reason: reason}
}
