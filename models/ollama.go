package models

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaOptions configures a locally served Ollama model.
type OllamaOptions struct {
	// Model is the Ollama model tag, e.g. "qwen3:8b".
	Model string

	// Host is the Ollama server URL. Empty uses the client default
	// (http://localhost:11434).
	Host string

	// Temperature is the sampling temperature applied to every call.
	Temperature float64

	// NumCtx is the context window size in tokens. Zero uses the
	// model default.
	NumCtx int
}

// NewOllama creates an LCGWrapper around an Ollama-served model. The
// temperature is installed as a default call option so the loop does
// not need to pass it on every call.
func NewOllama(opts OllamaOptions) (*LCGWrapper, error) {
	if opts.Model == "" {
		return nil, fmt.Errorf("ollama: model name is required")
	}

	ollamaOpts := []ollama.Option{
		ollama.WithModel(opts.Model),
	}
	if opts.Host != "" {
		ollamaOpts = append(ollamaOpts, ollama.WithServerURL(opts.Host))
	}
	if opts.NumCtx > 0 {
		ollamaOpts = append(ollamaOpts, ollama.WithRunnerNumCtx(opts.NumCtx))
	}

	llm, err := ollama.New(ollamaOpts...)
	if err != nil {
		return nil, fmt.Errorf("ollama: create client: %w", err)
	}

	return NewLCGWrapper(llm).
		WithModelName(opts.Model).
		WithDefaultOptions(llms.WithTemperature(opts.Temperature)), nil
}
