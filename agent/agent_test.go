package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/internal/tt"
)

func newRegistry(t *testing.T, tools ...parentassist.Tool) *parentassist.Registry {
	t.Helper()
	registry := parentassist.NewRegistry()
	for _, tool := range tools {
		require.NoError(t, registry.Register(tool))
	}
	return registry
}

func messagesText(messages []llms.MessageContent) string {
	var sb strings.Builder
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if tc, ok := part.(llms.TextContent); ok {
				sb.WriteString(tc.Text)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func TestNewController_Validation(t *testing.T) {
	type input struct {
		registry *parentassist.Registry
		cfg      Config
	}

	type expected struct {
		err error
	}

	emptyRegistry := parentassist.NewRegistry()

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "nil registry",
			input: input{
				registry: nil,
				cfg:      Config{MaxIterations: 5},
			},
			expected: expected{err: parentassist.ErrNoTools},
		},
		{
			name: "empty registry",
			input: input{
				registry: emptyRegistry,
				cfg:      Config{MaxIterations: 5},
			},
			expected: expected{err: parentassist.ErrNoTools},
		},
		{
			name: "zero max iterations",
			input: input{
				registry: nil, // filled in below
				cfg:      Config{MaxIterations: 0},
			},
			expected: expected{err: parentassist.ErrInvalidMaxIterations},
		},
		{
			name: "negative max iterations",
			input: input{
				registry: nil, // filled in below
				cfg:      Config{MaxIterations: -1},
			},
			expected: expected{err: parentassist.ErrInvalidMaxIterations},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			registry := tc.input.registry
			if errors.Is(tc.expected.err, parentassist.ErrInvalidMaxIterations) {
				registry = newRegistry(t, tt.StaticTool("book_knowledge", "content"))
			}

			ctrl, err := NewController(tt.NewMockModel(), registry, tc.input.cfg)

			require.ErrorIs(t, err, tc.expected.err)
			assert.Nil(t, ctrl)
		})
	}
}

func TestController_Run_EmptyQuestion(t *testing.T) {
	model := tt.NewMockModel()
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "content"))
	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	for _, question := range []string{"", "   ", "\t\n"} {
		outcome, err := ctrl.Run(context.Background(), question)

		require.ErrorIs(t, err, parentassist.ErrEmptyQuestion)
		assert.Nil(t, outcome)
	}
	assert.Equal(t, 0, model.CallCount(), "no model call for an empty question")
}

func TestController_Run_ToolThenAnswer(t *testing.T) {
	book := tt.NewRecordingTool(tt.StaticTool("book_knowledge", "Chapter 2: offer choices."))
	model := tt.NewMockModel().
		AddResponse("Thought: check the book\n"+
			"Action: book_knowledge\n"+
			"Action Input: cooperation at bedtime", 100, 20).
		AddResponse("Thought: I have what I need\n"+
			"Final Answer: Offer two acceptable choices at bedtime.", 150, 30)
	registry := newRegistry(t, book, tt.StaticTool("web_search", "unused"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "My kid fights bedtime, help?")

	require.NoError(t, err)
	require.Equal(t, parentassist.OutcomeAnswer, outcome.Kind)
	assert.Equal(t, "Offer two acceptable choices at bedtime.", outcome.Answer)

	// Exactly two model calls, one tool call with the parsed input.
	assert.Equal(t, 2, model.CallCount())
	require.Len(t, book.Inputs, 1)
	assert.Equal(t, "cooperation at bedtime", book.Inputs[0])
}

func TestController_Run_ObservationAppearsInNextPrompt(t *testing.T) {
	book := tt.StaticTool("book_knowledge", "Observation payload: name the feeling.")
	model := tt.NewMockModel().
		AddResponse("Action: book_knowledge\nAction Input: tantrums", 0, 0).
		AddResponse("Final Answer: Name the feeling.", 0, 0)
	registry := newRegistry(t, book)

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	_, err = ctrl.Run(context.Background(), "Tantrum advice?")
	require.NoError(t, err)

	require.Len(t, model.CapturedMessages, 2)
	secondPrompt := messagesText(model.CapturedMessages[1])
	assert.Contains(t, secondPrompt,
		"Observation: Observation payload: name the feeling.")
	assert.Contains(t, secondPrompt, "Action: book_knowledge")
	assert.Contains(t, secondPrompt, "Action Input: tantrums")
}

func TestController_Run_FirstPromptContainsToolsAndQuestion(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("Final Answer: done", 0, 0)
	registry := newRegistry(t,
		tt.StaticTool("book_knowledge", "book stuff"),
		tt.StaticTool("web_search", "search stuff"),
	)

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)
	ctrl.WithTimeProvider(parentassist.NewMockTimeProvider(
		time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)))

	_, err = ctrl.Run(context.Background(), "What about lying?")
	require.NoError(t, err)

	require.Len(t, model.CapturedMessages, 1)
	prompt := messagesText(model.CapturedMessages[0])
	assert.Contains(t, prompt, "book_knowledge")
	assert.Contains(t, prompt, "web_search")
	assert.Contains(t, prompt, "Question: What about lying?")
	assert.Contains(t, prompt, "Today is 2026-08-29 (Saturday).")
	assert.Contains(t, prompt, "Begin!")
}

func TestController_Run_ExhaustedAtMaxIterations(t *testing.T) {
	type input struct {
		maxIterations int
	}

	tests := []struct {
		name  string
		input input
	}{
		{name: "single iteration", input: input{maxIterations: 1}},
		{name: "three iterations", input: input{maxIterations: 3}},
		{name: "five iterations", input: input{maxIterations: 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			book := tt.NewRecordingTool(tt.StaticTool("book_knowledge", "more text"))
			model := tt.NewMockModel()
			// The model never concludes; every response is another action.
			for i := 0; i < tc.input.maxIterations+3; i++ {
				model.AddResponse(
					"Action: book_knowledge\nAction Input: again", 0, 0)
			}
			registry := newRegistry(t, book)

			ctrl, err := NewController(model, registry,
				Config{MaxIterations: tc.input.maxIterations})
			require.NoError(t, err)

			outcome, err := ctrl.Run(context.Background(), "endless question")

			require.NoError(t, err)
			assert.Equal(t, parentassist.OutcomeExhausted, outcome.Kind)
			assert.Equal(t, tc.input.maxIterations, model.CallCount(),
				"the model is called exactly max iterations times")
			assert.Len(t, book.Inputs, tc.input.maxIterations,
				"each iteration's tool request is honored before exhaustion")
		})
	}
}

func TestController_Run_ToolNotFoundContinues(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("Action: encyclopedia\nAction Input: sleep", 0, 0).
		AddResponse("Final Answer: recovered", 0, 0)
	registry := newRegistry(t,
		tt.StaticTool("book_knowledge", "book"),
		tt.StaticTool("web_search", "web"),
	)

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "sleep question")

	require.NoError(t, err)
	assert.Equal(t, parentassist.OutcomeAnswer, outcome.Kind)
	assert.Equal(t, 2, model.CallCount())

	// The corrective observation names the unknown tool and lists the
	// real ones.
	secondPrompt := messagesText(model.CapturedMessages[1])
	assert.Contains(t, secondPrompt, `Tool "encyclopedia" not found`)
	assert.Contains(t, secondPrompt, "book_knowledge, web_search")
}

func TestController_Run_MalformedResponseContinues(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("I will just ramble with no format at all.", 0, 0).
		AddResponse("Final Answer: recovered after reminder", 0, 0)
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "book"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "any question")

	require.NoError(t, err)
	assert.Equal(t, parentassist.OutcomeAnswer, outcome.Kind)
	assert.Equal(t, "recovered after reminder", outcome.Answer)

	secondPrompt := messagesText(model.CapturedMessages[1])
	assert.Contains(t, secondPrompt,
		"did not follow the required format")
}

func TestController_Run_ConsecutiveMalformedStopsEarly(t *testing.T) {
	model := tt.NewMockModel()
	for i := 0; i < 10; i++ {
		model.AddResponse("nothing parseable here", 0, 0)
	}
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "book"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 10})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "any question")

	require.NoError(t, err)
	assert.Equal(t, parentassist.OutcomeExhausted, outcome.Kind)
	assert.Less(t, model.CallCount(), 10,
		"the consecutive parse error guard stops a runaway loop")
}

func TestController_Run_ToolErrorSanitized(t *testing.T) {
	type input struct {
		toolErr error
	}

	type expected struct {
		observationContains    string
		observationNotContains string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "tool error message is shown",
			input: input{
				toolErr: parentassist.NewToolError(
					"web_search", "the search service could not be reached",
					errors.New("dial tcp 10.0.0.5:443: connection refused"),
				),
			},
			expected: expected{
				observationContains:    "the search service could not be reached",
				observationNotContains: "10.0.0.5",
			},
		},
		{
			name: "plain error stays generic",
			input: input{
				toolErr: errors.New("panic: index out of range in internal cache"),
			},
			expected: expected{
				observationContains:    "internal error",
				observationNotContains: "index out of range",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := tt.NewMockModel().
				AddResponse("Action: web_search\nAction Input: anything", 0, 0).
				AddResponse("Final Answer: fallback answer", 0, 0)
			registry := newRegistry(t,
				tt.FailingTool("web_search", tc.input.toolErr))

			ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
			require.NoError(t, err)

			outcome, err := ctrl.Run(context.Background(), "question")

			require.NoError(t, err)
			assert.Equal(t, parentassist.OutcomeAnswer, outcome.Kind)

			secondPrompt := messagesText(model.CapturedMessages[1])
			assert.Contains(t, secondPrompt, tc.expected.observationContains)
			assert.NotContains(t, secondPrompt, tc.expected.observationNotContains)
		})
	}
}

func TestController_Run_ModelErrorFails(t *testing.T) {
	model := tt.NewMockModel().
		AddError(errors.New("connection refused to 127.0.0.1:11434"))
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "book"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "question")

	require.NoError(t, err)
	require.Equal(t, parentassist.OutcomeFailed, outcome.Kind)
	assert.NotContains(t, outcome.Reason, "127.0.0.1",
		"raw error detail must not leak into the outcome")
	assert.Equal(t, 1, model.CallCount())
}

func TestController_Run_ModelTimeoutIsRecoverable(t *testing.T) {
	model := tt.NewMockModel().
		AddError(context.DeadlineExceeded).
		AddResponse("Final Answer: recovered after timeout", 0, 0)
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "book"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "question")

	require.NoError(t, err)
	assert.Equal(t, parentassist.OutcomeAnswer, outcome.Kind)
	assert.Equal(t, "recovered after timeout", outcome.Answer)
	assert.Equal(t, 2, model.CallCount())
}

func TestController_Run_CanceledContext(t *testing.T) {
	model := tt.NewMockModel()
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "book"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := ctrl.Run(ctx, "question")

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, outcome)
	assert.Equal(t, 0, model.CallCount())
}

func TestController_Run_EmptyChoicesIsMalformed(t *testing.T) {
	model := tt.NewMockModel().
		AddRawResponse(&parentassist.ContentResponse{}).
		AddResponse("Final Answer: recovered", 0, 0)
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "book"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "question")

	require.NoError(t, err)
	assert.Equal(t, parentassist.OutcomeAnswer, outcome.Kind)
	assert.Equal(t, 2, model.CallCount())
}

func TestController_Run_FinalAnswerWinsOverAction(t *testing.T) {
	book := tt.NewRecordingTool(tt.StaticTool("book_knowledge", "book"))
	model := tt.NewMockModel().
		AddResponse("Thought: I could search, but I know this.\n"+
			"Action: book_knowledge\n"+
			"Action Input: something\n"+
			"Final Answer: The direct answer.", 0, 0)
	registry := newRegistry(t, book)

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "question")

	require.NoError(t, err)
	require.Equal(t, parentassist.OutcomeAnswer, outcome.Kind)
	assert.Equal(t, "The direct answer.", outcome.Answer)
	assert.Empty(t, book.Inputs, "no tool call when the final answer wins")
	assert.Equal(t, 1, model.CallCount())
}

func TestController_Run_CaseInsensitiveToolLookup(t *testing.T) {
	book := tt.NewRecordingTool(tt.StaticTool("book_knowledge", "book text"))
	model := tt.NewMockModel().
		AddResponse("Action: Book_Knowledge \nAction Input: x", 0, 0).
		AddResponse("Final Answer: ok", 0, 0)
	registry := newRegistry(t, book)

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	outcome, err := ctrl.Run(context.Background(), "question")

	require.NoError(t, err)
	assert.Equal(t, parentassist.OutcomeAnswer, outcome.Kind)
	assert.Len(t, book.Inputs, 1,
		"case and whitespace differences resolve to the registered tool")
}

func TestController_WithBehaviorAndTemplates(t *testing.T) {
	model := tt.NewMockModel().AddResponse("Final Answer: ok", 0, 0)
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "book"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)
	ctrl.WithBehavior("You are a terse test persona.")
	_, err = ctrl.WithTaskTemplateString("Q={{.Question}}")
	require.NoError(t, err)

	_, err = ctrl.Run(context.Background(), "hello")
	require.NoError(t, err)

	prompt := messagesText(model.CapturedMessages[0])
	assert.Contains(t, prompt, "You are a terse test persona.")
	assert.Contains(t, prompt, "Q=hello")
}

func TestController_WithTemplateString_ParseError(t *testing.T) {
	model := tt.NewMockModel()
	registry := newRegistry(t, tt.StaticTool("book_knowledge", "book"))

	ctrl, err := NewController(model, registry, Config{MaxIterations: 5})
	require.NoError(t, err)

	_, err = ctrl.WithSystemTemplateString("{{.Unclosed")
	assert.Error(t, err)

	_, err = ctrl.WithTaskTemplateString("{{.Unclosed")
	assert.Error(t, err)
}
