package parentassist

import (
	"fmt"
	"strings"
)

// Step is one record of the reasoning-action loop: what the model
// thought, which tool it asked for with what input, and what the tool
// (or the loop itself, on errors) observed back. Fields that did not
// occur in an iteration are left empty - a malformed model response,
// for example, produces a step with only Thought and Observation.
type Step struct {
	Thought     string
	Action      string
	ActionInput string
	Observation string
}

// Transcript is the ordered, append-only log of steps for one
// question. Each loop invocation owns exactly one Transcript; it
// starts empty and is never persisted or shared across questions.
type Transcript struct {
	question string
	steps    []Step
}

// NewTranscript creates an empty Transcript for the given question.
func NewTranscript(question string) *Transcript {
	return &Transcript{question: question}
}

// Question returns the original user question.
func (t *Transcript) Question() string {
	return t.question
}

// Append adds a step to the end of the transcript.
func (t *Transcript) Append(step Step) {
	t.steps = append(t.steps, step)
}

// Len returns the number of recorded steps.
func (t *Transcript) Len() int {
	return len(t.steps)
}

// Steps returns a copy of the recorded steps in order.
func (t *Transcript) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Render serializes the transcript into the scratchpad text embedded
// in the next prompt. Every recorded field is reproduced verbatim, in
// original order, under its ReAct label, so the model sees the exact
// history of prior iterations.
func (t *Transcript) Render() string {
	var sb strings.Builder
	for _, step := range t.steps {
		if step.Thought != "" {
			fmt.Fprintf(&sb, "Thought: %s\n", step.Thought)
		}
		if step.Action != "" {
			fmt.Fprintf(&sb, "Action: %s\n", step.Action)
			fmt.Fprintf(&sb, "Action Input: %s\n", step.ActionInput)
		}
		if step.Observation != "" {
			fmt.Fprintf(&sb, "Observation: %s\n", step.Observation)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
