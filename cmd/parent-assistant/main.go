// Package main provides the interactive console for the parenting
// assistant: a question-answer loop over a locally served Ollama
// model with book knowledge and web search tools.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/agent"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/config"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/hooks"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/loggers"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/models"
	"github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent/tools"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// exitWords end the session, case-insensitively.
var exitWords = map[string]bool{
	"quit": true,
	"exit": true,
	"bye":  true,
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	verbose := flag.Bool("verbose", false, "print model and tool activity to stdout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctrl, traceFile, err := buildController(cfg, *verbose)
	if err != nil {
		return err
	}
	if traceFile != nil {
		defer traceFile.Close()
	}

	rl, err := readline.New(colorCyan + "You: " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	printWelcome(cfg)

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Interrupt on an empty prompt ends the session;
				// with typed input it just clears the line.
				if len(input) == 0 {
					return nil
				}
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		question := strings.TrimSpace(input)
		if question == "" {
			continue
		}
		if exitWords[strings.ToLower(question)] {
			fmt.Printf("%sTake care! You're doing great.%s\n", colorGreen, colorReset)
			return nil
		}

		answerQuestion(ctrl, question)
	}
}

// buildController assembles the assistant: config, knowledge
// document, model, tools and the loop controller. Any failure here is
// a startup error; the caller exits.
func buildController(cfg *config.Config, verbose bool) (*agent.Controller, *os.File, error) {
	book, err := tools.LoadBookKnowledge(cfg.BookPath)
	if err != nil {
		return nil, nil, err
	}

	searchTimeout, err := cfg.SearchCallTimeout()
	if err != nil {
		return nil, nil, err
	}
	searchOpts := []tools.WebSearchOption{}
	if searchTimeout > 0 {
		searchOpts = append(searchOpts, tools.WithTimeout(searchTimeout))
	}

	registry := parentassist.NewRegistry()
	if err := registry.Register(book); err != nil {
		return nil, nil, err
	}
	if err := registry.Register(tools.NewWebSearch(searchOpts...)); err != nil {
		return nil, nil, err
	}

	model, err := models.NewOllama(models.OllamaOptions{
		Model:       cfg.Model,
		Host:        cfg.OllamaHost,
		Temperature: cfg.Temperature,
		NumCtx:      cfg.NumCtx,
	})
	if err != nil {
		return nil, nil, err
	}

	modelTimeout, err := cfg.ModelCallTimeout()
	if err != nil {
		return nil, nil, err
	}

	ctrl, err := agent.NewController(model, registry, agent.Config{
		MaxIterations: cfg.MaxIterations,
		ModelTimeout:  modelTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	hookRegistry := hooks.NewRegistry()
	if verbose {
		hookRegistry.Register(loggers.NewLoggerHook())
	}
	var traceFile *os.File
	if cfg.TraceLog != "" {
		traceFile, err = os.OpenFile(cfg.TraceLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open trace log %q: %w", cfg.TraceLog, err)
		}
		hookRegistry.Register(loggers.NewLoggerHookWithWriter(traceFile))
	}
	if hookRegistry.Len() > 0 {
		ctrl.WithHooks(hookRegistry)
	}

	return ctrl, traceFile, nil
}

// answerQuestion runs one question with SIGINT cancelling the
// in-flight work instead of killing the process.
func answerQuestion(ctrl *agent.Controller, question string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Printf("\n%sCancelling...%s\n", colorYellow, colorReset)
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Printf("%sThinking...%s\n", colorDim, colorReset)

	outcome, err := ctrl.Run(ctx, question)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Printf("%sQuestion cancelled.%s\n\n", colorYellow, colorReset)
			return
		}
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n\n", colorRed, err, colorReset)
		return
	}

	printOutcome(outcome)
}

func printOutcome(outcome *parentassist.Outcome) {
	switch outcome.Kind {
	case parentassist.OutcomeAnswer:
		fmt.Printf("\n%sAssistant:%s %s\n\n", colorBold+colorGreen, colorReset, outcome.Answer)
	case parentassist.OutcomeExhausted:
		fmt.Printf("\n%sAssistant:%s I'm sorry, I couldn't reach a confident "+
			"answer for that one. Try rephrasing the question or breaking it "+
			"into smaller parts.\n\n", colorBold+colorYellow, colorReset)
	case parentassist.OutcomeFailed:
		fmt.Printf("\n%sAssistant:%s Something went wrong while working on "+
			"your question (%s). Please try again.\n\n",
			colorBold+colorRed, colorReset, outcome.Reason)
	}
}

func printWelcome(cfg *config.Config) {
	fmt.Printf("%s%sParent Assistant%s\n", colorBold, colorGreen, colorReset)
	fmt.Printf("%s%s%s\n", colorDim, strings.Repeat("-", 60), colorReset)
	fmt.Printf("Model: %s\n", cfg.Model)
	fmt.Printf("Ask me anything about parenting young children.\n")
	fmt.Printf("Type %squit%s, %sexit%s or %sbye%s to leave.\n",
		colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
	fmt.Printf("%s%s%s\n", colorDim, strings.Repeat("-", 60), colorReset)
}
