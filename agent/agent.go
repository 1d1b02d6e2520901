// Package agent implements the reasoning-action loop controller: the
// bounded protocol that interleaves model inference with tool
// invocation until the model produces a final answer or the
// iteration limit is reached.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tmc/langchaingo/llms"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/format"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/hooks"
)

// Config holds the controller's loop parameters.
type Config struct {
	// MaxIterations is the hard cap on reasoning-action cycles per
	// question. Must be at least 1.
	MaxIterations int

	// ModelTimeout bounds each individual model call. Zero disables
	// the per-call timeout. A timed-out call is recoverable: it
	// consumes an iteration and feeds a corrective observation back.
	ModelTimeout time.Duration
}

// Controller drives the reasoning-action loop for one question at a
// time. It is safe to reuse across questions: all per-question state
// lives in the ExecutionContext and Transcript created by Run.
//
// Flow per iteration: render prompt (preamble + tools + question +
// transcript) -> model call -> parse into a directive -> on action,
// invoke the tool and append the observation; on final answer,
// return it; on anything else, append a corrective observation.
type Controller struct {
	model    parentassist.Model
	registry *parentassist.Registry
	fmt      *format.ReAct
	hooks    *hooks.Registry
	time     parentassist.TimeProvider

	behavior       string
	systemTemplate *template.Template
	taskTemplate   *template.Template

	maxIterations int
	modelTimeout  time.Duration
	limits        []parentassist.Limit
}

// NewController creates a Controller. The registry must contain at
// least one tool: the assistant answers through its tools, not
// directly.
func NewController(
	model parentassist.Model,
	registry *parentassist.Registry,
	cfg Config,
) (*Controller, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, parentassist.ErrNoTools
	}
	if cfg.MaxIterations < 1 {
		return nil, parentassist.ErrInvalidMaxIterations
	}
	return &Controller{
		model:          model,
		registry:       registry,
		fmt:            format.NewReAct(),
		time:           parentassist.NewDefaultTimeProvider(),
		behavior:       DefaultBehavior,
		systemTemplate: DefaultSystemTemplate,
		taskTemplate:   DefaultTaskTemplate,
		maxIterations:  cfg.MaxIterations,
		modelTimeout:   cfg.ModelTimeout,
		limits:         parentassist.DefaultLimits(),
	}, nil
}

// WithHooks sets the hook registry fired during execution.
func (c *Controller) WithHooks(registry *hooks.Registry) *Controller {
	c.hooks = registry
	return c
}

// WithFormat replaces the response format parser.
func (c *Controller) WithFormat(f *format.ReAct) *Controller {
	c.fmt = f
	return c
}

// WithTimeProvider sets the time provider used in prompts. Inject a
// mock for deterministic tests.
func (c *Controller) WithTimeProvider(tp parentassist.TimeProvider) *Controller {
	c.time = tp
	return c
}

// WithBehavior replaces the default persona/instruction preamble.
func (c *Controller) WithBehavior(behavior string) *Controller {
	c.behavior = behavior
	return c
}

// WithLimits replaces the default runaway-error limits. The iteration
// cap from Config is always applied on top of these.
func (c *Controller) WithLimits(limits []parentassist.Limit) *Controller {
	c.limits = limits
	return c
}

// WithSystemTemplateString replaces the system prompt template. The
// string is parsed as a Go text/template over SystemPromptData.
func (c *Controller) WithSystemTemplateString(tmplStr string) (*Controller, error) {
	tmpl, err := template.New("system").Parse(tmplStr)
	if err != nil {
		return c, fmt.Errorf("parse system template: %w", err)
	}
	c.systemTemplate = tmpl
	return c, nil
}

// WithTaskTemplateString replaces the task prompt template. The
// string is parsed as a Go text/template over TaskPromptData.
func (c *Controller) WithTaskTemplateString(tmplStr string) (*Controller, error) {
	tmpl, err := template.New("task").Parse(tmplStr)
	if err != nil {
		return c, fmt.Errorf("parse task template: %w", err)
	}
	c.taskTemplate = tmpl
	return c, nil
}

// Run answers one question. It returns an Outcome for every terminal
// state the session can keep running through (answer, exhausted,
// model failure) and an error only when the question itself was
// invalid or the context was canceled (user interrupt).
func (c *Controller) Run(
	ctx context.Context,
	question string,
) (*parentassist.Outcome, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, parentassist.ErrEmptyQuestion
	}

	transcript := parentassist.NewTranscript(question)
	execCtx := parentassist.NewExecutionContext(ctx, "question", transcript)
	execCtx.SetLimits(append(c.limits, parentassist.Limit{
		Type:     parentassist.LimitExactKey,
		Key:      parentassist.KeyIterations,
		MaxValue: float64(c.maxIterations),
	}))
	if c.hooks != nil {
		execCtx.SetHookFirer(c.hooks)
		c.hooks.FireBeforeExecution(ctx, execCtx, parentassist.BeforeExecutionEvent{
			Question: question,
		})
	}

	outcome, err := c.runLoop(execCtx, transcript, question)

	if c.hooks != nil {
		c.hooks.FireAfterExecution(ctx, execCtx, parentassist.AfterExecutionEvent{
			Outcome:  outcome,
			Err:      err,
			Duration: execCtx.Duration(),
		})
	}
	return outcome, err
}

// runLoop is the loop proper. The iteration counter is a hard,
// unconditionally checked bound: the model is invoked at most
// maxIterations times.
func (c *Controller) runLoop(
	execCtx *parentassist.ExecutionContext,
	transcript *parentassist.Transcript,
	question string,
) (*parentassist.Outcome, error) {
	goCtx := execCtx.Context()

	for i := 0; i < c.maxIterations; i++ {
		if goCtx.Err() != nil {
			return c.terminateEarly(execCtx)
		}

		execCtx.StartIteration()
		iterStart := time.Now()
		if c.hooks != nil {
			c.hooks.FireBeforeIteration(goCtx, execCtx, parentassist.BeforeIterationEvent{
				Iteration: execCtx.Iteration(),
			})
		}

		messages, err := c.buildMessages(question, transcript)
		if err != nil {
			execCtx.SetTermination(parentassist.TerminationError, err)
			return parentassist.FailedOutcome("internal prompt rendering error"), nil
		}

		response, err := c.callModel(execCtx, messages)
		if err != nil {
			if goCtx.Err() != nil {
				return c.terminateEarly(execCtx)
			}
			if errors.Is(err, context.DeadlineExceeded) {
				// Per-call timeout: recoverable. The iteration is
				// consumed and the model is told to be briefer.
				transcript.Append(parentassist.Step{
					Observation: "The previous response timed out before completing. " +
						"Answer more concisely.",
				})
				c.endIteration(execCtx, nil, "", time.Since(iterStart))
				continue
			}
			execCtx.SetTermination(parentassist.TerminationError, err)
			return parentassist.FailedOutcome("the language model request failed"), nil
		}

		raw := ""
		if len(response.Choices) > 0 {
			raw = response.Choices[0].Content
		}
		directive := c.fmt.Parse(execCtx, raw)

		switch directive.Kind {
		case parentassist.DirectiveFinalAnswer:
			transcript.Append(parentassist.Step{Thought: directive.Thought})
			c.endIteration(execCtx, &directive, "", time.Since(iterStart))
			execCtx.SetTermination(parentassist.TerminationAnswer, nil)
			return parentassist.AnswerOutcome(directive.Answer), nil

		case parentassist.DirectiveAction:
			observation := c.dispatchAction(execCtx, directive)
			transcript.Append(parentassist.Step{
				Thought:     directive.Thought,
				Action:      directive.Tool,
				ActionInput: directive.Input,
				Observation: observation,
			})
			c.endIteration(execCtx, &directive, observation, time.Since(iterStart))

		case parentassist.DirectiveMalformed:
			observation := c.fmt.FormatReminder()
			transcript.Append(parentassist.Step{
				Thought:     directive.Thought,
				Observation: observation,
			})
			c.endIteration(execCtx, &directive, observation, time.Since(iterStart))
		}
	}

	execCtx.SetTermination(parentassist.TerminationExhausted, nil)
	return parentassist.ExhaustedOutcome(), nil
}

// terminateEarly maps a canceled execution context to its terminal
// state: a tripped limit is an exhausted outcome, a user interrupt
// propagates as an error so the session loop can end the question
// gracefully.
func (c *Controller) terminateEarly(
	execCtx *parentassist.ExecutionContext,
) (*parentassist.Outcome, error) {
	if limit := execCtx.ExceededLimit(); limit != nil {
		execCtx.SetTermination(
			parentassist.TerminationLimitExceeded,
			fmt.Errorf("limit exceeded: %s > %v", limit.Key, limit.MaxValue),
		)
		return parentassist.ExhaustedOutcome(), nil
	}
	err := execCtx.Context().Err()
	execCtx.SetTermination(parentassist.TerminationCanceled, err)
	return nil, err
}

func (c *Controller) endIteration(
	execCtx *parentassist.ExecutionContext,
	directive *parentassist.Directive,
	observation string,
	duration time.Duration,
) {
	execCtx.EndIteration(duration)
	if c.hooks != nil {
		c.hooks.FireAfterIteration(
			execCtx.Context(), execCtx,
			parentassist.AfterIterationEvent{
				Iteration:   execCtx.Iteration(),
				Directive:   directive,
				Observation: observation,
				Duration:    duration,
			},
		)
	}
}

// buildMessages renders the system and task messages for the next
// model call.
func (c *Controller) buildMessages(
	question string,
	transcript *parentassist.Transcript,
) ([]llms.MessageContent, error) {
	var toolsPrompt strings.Builder
	for _, tool := range c.registry.Tools() {
		fmt.Fprintf(&toolsPrompt, "- %s: %s\n", tool.Name(), tool.Description())
	}

	systemContent, err := executeTemplate(c.systemTemplate, SystemPromptData{
		Behavior:     c.behavior,
		ToolsPrompt:  toolsPrompt.String(),
		FormatPrompt: c.fmt.DescribeStructure(c.registry.Names()),
		Time:         c.time,
	})
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}

	taskContent, err := executeTemplate(c.taskTemplate, TaskPromptData{
		Question:   question,
		ScratchPad: transcript.Render(),
	})
	if err != nil {
		return nil, fmt.Errorf("render task prompt: %w", err)
	}

	return []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: systemContent}},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: taskContent}},
		},
	}, nil
}

// callModel invokes the model with the per-call timeout applied.
func (c *Controller) callModel(
	execCtx *parentassist.ExecutionContext,
	messages []llms.MessageContent,
) (*parentassist.ContentResponse, error) {
	callCtx := execCtx.Context()
	if c.modelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, c.modelTimeout)
		defer cancel()
	}
	return c.model.GenerateContent(callCtx, execCtx, messages)
}

// dispatchAction looks up and invokes the requested tool, converting
// every failure mode into an observation. It never returns an error:
// tool problems are information for the model, not faults.
func (c *Controller) dispatchAction(
	execCtx *parentassist.ExecutionContext,
	directive parentassist.Directive,
) string {
	tool, ok := c.registry.Lookup(directive.Tool)
	if !ok {
		execCtx.Trace(&parentassist.ToolNotFoundTrace{Requested: directive.Tool})
		execCtx.Stats().IncrCounter(parentassist.KeyToolNotFound, 1)
		return fmt.Sprintf(
			"Tool %q not found. Available tools: %s.",
			directive.Tool, strings.Join(c.registry.Names(), ", "),
		)
	}

	goCtx := execCtx.Context()
	execCtx.Hooks().FireBeforeToolCall(goCtx, execCtx, parentassist.BeforeToolCallEvent{
		Tool:  tool.Name(),
		Input: directive.Input,
	})

	start := time.Now()
	output, err := tool.Call(goCtx, directive.Input)
	duration := time.Since(start)

	execCtx.Stats().IncrCounter(parentassist.KeyToolCalls, 1)
	execCtx.Stats().IncrCounter(parentassist.KeyToolCallsFor+tool.Name(), 1)

	trace := &parentassist.ToolCallTrace{
		Tool:     tool.Name(),
		Input:    directive.Input,
		Output:   output,
		Duration: duration,
	}
	if err != nil {
		trace.Error = err.Error()
	}
	execCtx.Trace(trace)

	execCtx.Hooks().FireAfterToolCall(goCtx, execCtx, parentassist.AfterToolCallEvent{
		Tool:     tool.Name(),
		Input:    directive.Input,
		Output:   output,
		Duration: duration,
		Err:      err,
	})

	if err != nil {
		execCtx.Stats().IncrCounter(parentassist.KeyToolCallErrorsTotal, 1)
		execCtx.Stats().IncrGauge(parentassist.KeyToolCallErrorsConsecutive, 1)
		return fmt.Sprintf(
			"The tool %q failed: %s. You may try a different tool or answer "+
				"from what you already know.",
			tool.Name(), sanitizeToolError(err),
		)
	}

	execCtx.Stats().ResetGauge(parentassist.KeyToolCallErrorsConsecutive)
	return output
}

// sanitizeToolError reduces a tool failure to text safe to show the
// model: the ToolError message when available, a generic description
// otherwise. Raw internal error detail never reaches the prompt.
func sanitizeToolError(err error) string {
	var toolErr *parentassist.ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Message
	}
	return "the tool encountered an internal error"
}
