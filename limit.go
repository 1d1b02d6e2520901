package parentassist

// LimitType specifies how to match stat keys for limit checking.
type LimitType string

const (
	// LimitExactKey matches an exact key.
	LimitExactKey LimitType = "exact"

	// LimitKeyPrefix matches any key with the given prefix. Use for
	// limits across all tools (e.g. KeyToolCallsFor matches every
	// per-tool counter).
	LimitKeyPrefix LimitType = "prefix"
)

// Limit defines a threshold that stops a runaway question. Limits are
// checked whenever stats are updated; when one is exceeded the
// ExecutionContext is canceled and the loop ends with an exhausted
// outcome.
//
// The iteration cap from configuration is enforced twice: as the
// loop's own hard counter check, and mirrored here so nested stat
// updates can never outlive it. The comparison is strict:
// currentValue > MaxValue.
type Limit struct {
	// Type specifies how to match keys (exact or prefix).
	Type LimitType

	// Key is the exact key or prefix to match.
	Key string

	// MaxValue is the threshold. Counters are compared as float64.
	MaxValue float64
}

// matches reports whether the limit applies to the given key.
func (l Limit) matches(key string) bool {
	if l.Type == LimitKeyPrefix {
		return len(key) >= len(l.Key) && key[:len(l.Key)] == l.Key
	}
	return key == l.Key
}

// DefaultLimits returns the guards applied to every question in
// addition to the configured iteration cap:
//
//   - 3 consecutive malformed model responses
//   - 3 consecutive tool call errors
//
// Both reset when an iteration succeeds, so a model that recovers is
// never cut off.
func DefaultLimits() []Limit {
	return []Limit{
		{Type: LimitExactKey, Key: KeyParseErrorsConsecutive, MaxValue: 3},
		{Type: LimitExactKey, Key: KeyToolCallErrorsConsecutive, MaxValue: 3},
	}
}
