package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "qwen3:8b", cfg.Model)
	assert.Equal(t, 0.3, cfg.Temperature)
	assert.Equal(t, 4096, cfg.NumCtx)
	assert.Equal(t, "book_summary.txt", cfg.BookPath)
	assert.Equal(t, 5, cfg.MaxIterations)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
model: llama3:70b
temperature: 0.7
max_iterations: 8
book_path: /data/book.txt
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "llama3:70b", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 8, cfg.MaxIterations)
	assert.Equal(t, "/data/book.txt", cfg.BookPath)
	// Unset fields keep their defaults.
	assert.Equal(t, 4096, cfg.NumCtx)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "model: from-yaml\nmax_iterations: 4\n")
	t.Setenv("PARENT_ASSISTANT_MODEL", "from-env")
	t.Setenv("PARENT_ASSISTANT_MAX_ITERATIONS", "7")
	t.Setenv("PARENT_ASSISTANT_TEMPERATURE", "0.9")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Model)
	assert.Equal(t, 7, cfg.MaxIterations)
	assert.Equal(t, 0.9, cfg.Temperature)
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("PARENT_ASSISTANT_MAX_ITERATIONS", "lots")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PARENT_ASSISTANT_MAX_ITERATIONS")
}

func TestLoad_MissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "model: [unclosed\n")

	_, err := Load(path)

	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	type input struct {
		mutate func(*Config)
	}

	type expected struct {
		err bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "defaults are valid",
			input:    input{mutate: func(*Config) {}},
			expected: expected{err: false},
		},
		{
			name: "empty model",
			input: input{mutate: func(c *Config) {
				c.Model = ""
			}},
			expected: expected{err: true},
		},
		{
			name: "temperature above range",
			input: input{mutate: func(c *Config) {
				c.Temperature = 1.5
			}},
			expected: expected{err: true},
		},
		{
			name: "negative temperature",
			input: input{mutate: func(c *Config) {
				c.Temperature = -0.1
			}},
			expected: expected{err: true},
		},
		{
			name: "zero max iterations",
			input: input{mutate: func(c *Config) {
				c.MaxIterations = 0
			}},
			expected: expected{err: true},
		},
		{
			name: "absurd max iterations",
			input: input{mutate: func(c *Config) {
				c.MaxIterations = 5000
			}},
			expected: expected{err: true},
		},
		{
			name: "zero num_ctx",
			input: input{mutate: func(c *Config) {
				c.NumCtx = 0
			}},
			expected: expected{err: true},
		},
		{
			name: "bad duration syntax",
			input: input{mutate: func(c *Config) {
				c.ModelTimeout = "two minutes"
			}},
			expected: expected{err: true},
		},
		{
			name: "empty durations are allowed",
			input: input{mutate: func(c *Config) {
				c.ModelTimeout = ""
				c.SearchTimeout = ""
			}},
			expected: expected{err: false},
		},
		{
			name: "compound duration is allowed",
			input: input{mutate: func(c *Config) {
				c.ModelTimeout = "1m30s"
			}},
			expected: expected{err: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.input.mutate(cfg)

			err := Validate(cfg)

			if tt.expected.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_TimeoutAccessors(t *testing.T) {
	cfg := Default()
	cfg.ModelTimeout = "90s"
	cfg.SearchTimeout = ""

	modelTimeout, err := cfg.ModelCallTimeout()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, modelTimeout)

	searchTimeout, err := cfg.SearchCallTimeout()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), searchTimeout)

	cfg.ModelTimeout = "-5s"
	_, err = cfg.ModelCallTimeout()
	assert.Error(t, err)
}
