// Package format parses the model's semi-structured output into
// directives. The requested format is the ReAct labeled-field layout
// (Thought / Action / Action Input / Final Answer), but the model is
// under no obligation to honor it, so parsing never fails hard:
// anything that doesn't match degrades to a malformed directive and a
// corrective observation, confining format fragility to this package.
package format

import (
	"fmt"
	"regexp"
	"strings"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

// ReAct recognizes the labeled-field output format.
//
// Parsing rules:
//
//   - A final-answer marker anywhere in the text wins over any action
//     marker appearing earlier in the same text; everything after it
//     is the answer. A model may think out loud about an action and
//     still conclude with a final answer in one turn.
//   - Otherwise an action marker (at a line start) followed by an
//     action-input marker yields an action: the tool name is the
//     trimmed text up to line end, the input is the trimmed text up
//     to the next marker or end of text.
//   - Markers are matched case-insensitively.
//   - Everything else, including an empty final answer, is malformed.
type ReAct struct {
	thoughtRe *regexp.Regexp
	actionRe  *regexp.Regexp
	inputRe   *regexp.Regexp
	finalRe   *regexp.Regexp

	// markerRe delimits field content: any known marker at a line
	// start ends the preceding field.
	markerRe *regexp.Regexp
}

// NewReAct creates the parser for the default marker set.
func NewReAct() *ReAct {
	return &ReAct{
		thoughtRe: regexp.MustCompile(`(?im)^[ \t]*thought[ \t]*:`),
		actionRe:  regexp.MustCompile(`(?im)^[ \t]*action[ \t]*:`),
		inputRe:   regexp.MustCompile(`(?im)^[ \t]*action[ \t]+input[ \t]*:`),
		finalRe:   regexp.MustCompile(`(?i)final[ \t]*answer[ \t]*:`),
		markerRe: regexp.MustCompile(
			`(?im)^[ \t]*(thought|action([ \t]+input)?|observation|final[ \t]*answer)[ \t]*:`,
		),
	}
}

// DescribeStructure returns the output-format instructions embedded
// in the system prompt, listing the given tool names as the valid
// Action values.
func (f *ReAct) DescribeStructure(toolNames []string) string {
	var sb strings.Builder
	sb.WriteString("Answer using this exact format:\n\n")
	sb.WriteString("Thought: your reasoning about which tool to use and why\n")
	fmt.Fprintf(&sb, "Action: the tool to use - one of: %s\n", strings.Join(toolNames, ", "))
	sb.WriteString("Action Input: what to send to the tool\n")
	sb.WriteString("Observation: the tool's result (provided to you; never write this line yourself)\n")
	sb.WriteString("... (Thought/Action/Action Input/Observation repeat as needed)\n")
	sb.WriteString("Thought: I now have enough information to answer\n")
	sb.WriteString("Final Answer: your complete answer to the question\n")
	return sb.String()
}

// FormatReminder returns the corrective observation fed back to the
// model after a malformed response.
func (f *ReAct) FormatReminder() string {
	return "Your response did not follow the required format. " +
		"Reply with either an action:\n\n" +
		"Thought: <reasoning>\nAction: <tool name>\nAction Input: <tool input>\n\n" +
		"or a final answer:\n\nFinal Answer: <your answer>"
}

// Parse interprets one raw model response. It never returns an error
// and never panics: unparseable input produces a malformed directive.
// When execCtx is non-nil, malformed responses are traced and counted
// (total plus a consecutive gauge that resets on success).
func (f *ReAct) Parse(execCtx *parentassist.ExecutionContext, raw string) parentassist.Directive {
	thought := f.extractThought(raw)

	// Final answer takes priority over any earlier action marker.
	if loc := f.finalRe.FindStringIndex(raw); loc != nil {
		answer := strings.TrimSpace(raw[loc[1]:])
		if answer == "" {
			return f.malformed(execCtx, raw, thought, "final answer marker with empty answer")
		}
		f.parseSucceeded(execCtx)
		return parentassist.Directive{
			Kind:    parentassist.DirectiveFinalAnswer,
			Thought: thought,
			Answer:  answer,
			Raw:     raw,
		}
	}

	actionLoc := f.actionRe.FindStringIndex(raw)
	if actionLoc == nil {
		return f.malformed(execCtx, raw, thought, "no action or final answer marker")
	}

	// Tool name: trimmed text from the action marker to line end.
	nameEnd := len(raw)
	if nl := strings.IndexByte(raw[actionLoc[1]:], '\n'); nl >= 0 {
		nameEnd = actionLoc[1] + nl
	}
	tool := strings.TrimSpace(raw[actionLoc[1]:nameEnd])
	if tool == "" {
		return f.malformed(execCtx, raw, thought, "action marker without a tool name")
	}

	// Action input: the marker must follow the action line.
	rest := raw[nameEnd:]
	inputLoc := f.inputRe.FindStringIndex(rest)
	if inputLoc == nil {
		return f.malformed(execCtx, raw, thought, "action without an action input marker")
	}
	input := rest[inputLoc[1]:]
	if end := f.markerRe.FindStringIndex(input); end != nil {
		input = input[:end[0]]
	}

	f.parseSucceeded(execCtx)
	return parentassist.Directive{
		Kind:    parentassist.DirectiveAction,
		Thought: thought,
		Tool:    tool,
		Input:   strings.TrimSpace(input),
		Raw:     raw,
	}
}

// extractThought pulls the first thought field, if any. Thought text
// runs until the next marker or end of text.
func (f *ReAct) extractThought(raw string) string {
	loc := f.thoughtRe.FindStringIndex(raw)
	if loc == nil {
		return ""
	}
	content := raw[loc[1]:]
	if end := f.markerRe.FindStringIndex(content); end != nil {
		content = content[:end[0]]
	}
	return strings.TrimSpace(content)
}

func (f *ReAct) malformed(
	execCtx *parentassist.ExecutionContext,
	raw, thought, reason string,
) parentassist.Directive {
	if execCtx != nil {
		execCtx.Trace(&parentassist.ParseErrorTrace{Raw: raw, Reason: reason})
		execCtx.Stats().IncrCounter(parentassist.KeyParseErrorsTotal, 1)
		execCtx.Stats().IncrGauge(parentassist.KeyParseErrorsConsecutive, 1)
	}
	return parentassist.Directive{
		Kind:    parentassist.DirectiveMalformed,
		Thought: thought,
		Raw:     raw,
	}
}

func (f *ReAct) parseSucceeded(execCtx *parentassist.ExecutionContext) {
	if execCtx != nil {
		execCtx.Stats().ResetGauge(parentassist.KeyParseErrorsConsecutive)
	}
}
