package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSchema constrains the merged configuration. Duration fields
// accept time.ParseDuration syntax or empty.
const configSchema = `{
	"type": "object",
	"properties": {
		"model": {
			"type": "string",
			"minLength": 1
		},
		"ollama_host": {
			"type": "string"
		},
		"temperature": {
			"type": "number",
			"minimum": 0,
			"maximum": 1
		},
		"num_ctx": {
			"type": "integer",
			"minimum": 1
		},
		"book_path": {
			"type": "string",
			"minLength": 1
		},
		"max_iterations": {
			"type": "integer",
			"minimum": 1,
			"maximum": 100
		},
		"model_timeout": {
			"type": "string",
			"pattern": "^$|^[0-9]+(\\.[0-9]+)?(ns|us|ms|s|m|h)([0-9]+(\\.[0-9]+)?(ns|us|ms|s|m|h))*$"
		},
		"search_timeout": {
			"type": "string",
			"pattern": "^$|^[0-9]+(\\.[0-9]+)?(ns|us|ms|s|m|h)([0-9]+(\\.[0-9]+)?(ns|us|ms|s|m|h))*$"
		},
		"trace_log": {
			"type": "string"
		}
	},
	"required": ["model", "book_path", "max_iterations"]
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(configSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse config schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("config.json", doc); err != nil {
			compileErr = fmt.Errorf("add config schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("config.json")
	})
	return compiledSchema, compileErr
}

// Validate checks cfg against the configuration schema. The config is
// round-tripped through JSON so the validator sees the same shapes a
// JSON document would have.
func Validate(cfg *Config) error {
	schema, err := compiled()
	if err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}
	value, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("unmarshal config for validation: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
