package parentassist

import "errors"

// Sentinel errors returned by the controller's precondition checks.
var (
	// ErrEmptyQuestion is returned when the question is empty after
	// trimming whitespace.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrNoTools is returned when the controller is constructed with
	// an empty tool registry. The assistant answers through its
	// tools; a tool-less controller cannot do its job.
	ErrNoTools = errors.New("tool registry is empty")

	// ErrInvalidMaxIterations is returned when the configured
	// iteration cap is below one.
	ErrInvalidMaxIterations = errors.New("max iterations must be at least 1")
)
