// Package config loads assistant configuration from defaults, an
// optional YAML file, .env files and environment variables. Whatever
// the sources, the merged result is validated against a JSON schema
// before it is handed to the rest of the program: a bad configuration
// is a startup failure, never a degraded run.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all tunables of the assistant. Durations are strings
// in time.ParseDuration syntax so they read naturally in YAML.
type Config struct {
	// Model is the Ollama model tag.
	Model string `yaml:"model" json:"model"`

	// OllamaHost is the Ollama server URL. Empty uses the client
	// default.
	OllamaHost string `yaml:"ollama_host" json:"ollama_host"`

	// Temperature is the model sampling temperature.
	Temperature float64 `yaml:"temperature" json:"temperature"`

	// NumCtx is the model context window size in tokens.
	NumCtx int `yaml:"num_ctx" json:"num_ctx"`

	// BookPath is the path to the knowledge document.
	BookPath string `yaml:"book_path" json:"book_path"`

	// MaxIterations caps reasoning-action cycles per question.
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`

	// ModelTimeout bounds each model call. Empty disables it.
	ModelTimeout string `yaml:"model_timeout" json:"model_timeout"`

	// SearchTimeout bounds each web search request.
	SearchTimeout string `yaml:"search_timeout" json:"search_timeout"`

	// TraceLog is a file path for YAML execution logs. Empty
	// disables logging.
	TraceLog string `yaml:"trace_log" json:"trace_log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model:         "qwen3:8b",
		Temperature:   0.3,
		NumCtx:        4096,
		BookPath:      "book_summary.txt",
		MaxIterations: 5,
		ModelTimeout:  "2m",
		SearchTimeout: "10s",
	}
}

// Load builds the effective configuration: defaults, then the YAML
// file at path (optional when path is empty; required to exist when
// named), then PARENT_ASSISTANT_* environment variables. A .env file
// in the working directory is loaded first when present. The merged
// result is schema-validated.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays PARENT_ASSISTANT_* environment variables.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_MODEL"); ok {
		cfg.Model = v
	}
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_OLLAMA_HOST"); ok {
		cfg.OllamaHost = v
	}
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_TEMPERATURE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PARENT_ASSISTANT_TEMPERATURE: %w", err)
		}
		cfg.Temperature = f
	}
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_NUM_CTX"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PARENT_ASSISTANT_NUM_CTX: %w", err)
		}
		cfg.NumCtx = n
	}
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_BOOK_PATH"); ok {
		cfg.BookPath = v
	}
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_MAX_ITERATIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PARENT_ASSISTANT_MAX_ITERATIONS: %w", err)
		}
		cfg.MaxIterations = n
	}
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_MODEL_TIMEOUT"); ok {
		cfg.ModelTimeout = v
	}
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_SEARCH_TIMEOUT"); ok {
		cfg.SearchTimeout = v
	}
	if v, ok := os.LookupEnv("PARENT_ASSISTANT_TRACE_LOG"); ok {
		cfg.TraceLog = v
	}
	return nil
}

// ModelCallTimeout parses ModelTimeout. Empty means no timeout.
func (c *Config) ModelCallTimeout() (time.Duration, error) {
	return parseOptionalDuration("model_timeout", c.ModelTimeout)
}

// SearchCallTimeout parses SearchTimeout. Empty means no timeout.
func (c *Config) SearchCallTimeout() (time.Duration, error) {
	return parseOptionalDuration("search_timeout", c.SearchTimeout)
}

func parseOptionalDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", field)
	}
	return d, nil
}
