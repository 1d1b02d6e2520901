package agent

import (
	"strings"
	"text/template"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

// SystemPromptData is the data available to system prompt templates.
type SystemPromptData struct {
	// Behavior is the role/instruction preamble (persona, decision
	// process, response style).
	Behavior string

	// ToolsPrompt lists the available tool names and descriptions.
	ToolsPrompt string

	// FormatPrompt describes the required output format.
	FormatPrompt string

	// Time gives templates access to the current date:
	// {{.Time.Today}}, {{.Time.Weekday}}.
	Time parentassist.TimeProvider
}

// TaskPromptData is the data available to task prompt templates.
type TaskPromptData struct {
	// Question is the user's question.
	Question string

	// ScratchPad is the rendered transcript of previous iterations,
	// empty on the first iteration.
	ScratchPad string
}

// DefaultBehavior is the assistant's default persona and operating
// instructions. Override with Controller.WithBehavior.
const DefaultBehavior = `You are a compassionate parenting advisor specializing in positive
communication with young children (ages 2-7). Your expertise comes from
"How to Talk So Little Kids Will Listen" and current parenting research.

DECISION PROCESS:
1. For general parenting questions: use book_knowledge FIRST.
2. For current events, medical or specialized topics: add web_search.
3. Synthesize information from both sources when available.

RESPONSE STYLE:
- Be warm, supportive, and non-judgmental.
- Provide actionable, specific advice.
- Acknowledge that every child and situation is different.
- Keep responses practical and concise.

CORE PRINCIPLES TO EMPHASIZE:
- Feelings come first, behavior comes second.
- Offer choices to increase cooperation.
- Use playfulness over lecturing.
- Problem-solve together with the child.
- Keep language simple and clear.`

// DefaultSystemTemplate renders the system message: persona, date,
// tool list and output format.
var DefaultSystemTemplate = template.Must(
	template.New("system").Parse(`{{.Behavior}}

Today is {{.Time.Today}} ({{.Time.Weekday}}).

AVAILABLE TOOLS:
{{.ToolsPrompt}}
{{.FormatPrompt}}`))

// DefaultTaskTemplate renders the user message: the question plus
// the scratchpad of prior iterations.
var DefaultTaskTemplate = template.Must(
	template.New("task").Parse(`Question: {{.Question}}
{{- if .ScratchPad}}

{{.ScratchPad}}

Continue from the last observation.
{{- else}}

Begin!
{{- end}}`))

// executeTemplate renders a template into a string.
func executeTemplate(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
