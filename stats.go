package parentassist

import "sync"

// ExecutionStats contains counters and gauges for one question's
// execution. Counters only go up (model calls, tool calls, tokens).
// Gauges can be reset and fluctuate; they are used for consecutive
// error counts that clear when an iteration succeeds.
//
// Limit checking is triggered automatically when stats are modified:
// when a configured Limit is exceeded, the owning ExecutionContext is
// canceled. All methods are safe for concurrent use.
type ExecutionStats struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]float64
	execCtx  *ExecutionContext // back-ref for limit checking, nil for standalone stats
}

// NewExecutionStats creates a standalone ExecutionStats without limit
// checking. ExecutionContext creates its own, limit-checked instance.
func NewExecutionStats() *ExecutionStats {
	return &ExecutionStats{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
	}
}

func newExecutionStatsWithContext(ctx *ExecutionContext) *ExecutionStats {
	s := NewExecutionStats()
	s.execCtx = ctx
	return s
}

// IncrCounter increments a counter by delta. Protected keys are
// silently ignored.
func (s *ExecutionStats) IncrCounter(key string, delta int64) {
	if isProtectedKey(key) {
		return
	}
	s.incrCounter(key, delta)
}

// incrCounter bypasses the protected-key check. Only the
// ExecutionContext's iteration accounting uses it directly.
func (s *ExecutionStats) incrCounter(key string, delta int64) {
	s.mu.Lock()
	s.counters[key] += delta
	value := float64(s.counters[key])
	s.mu.Unlock()

	s.checkLimit(key, value)
}

// GetCounter returns a counter's current value (zero if unset).
func (s *ExecutionStats) GetCounter(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Counters returns a copy of all counters.
func (s *ExecutionStats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// IncrGauge increments a gauge by delta (which may be negative).
func (s *ExecutionStats) IncrGauge(key string, delta float64) {
	s.mu.Lock()
	s.gauges[key] += delta
	value := s.gauges[key]
	s.mu.Unlock()

	s.checkLimit(key, value)
}

// SetGauge sets a gauge to the given value.
func (s *ExecutionStats) SetGauge(key string, value float64) {
	s.mu.Lock()
	s.gauges[key] = value
	s.mu.Unlock()

	s.checkLimit(key, value)
}

// ResetGauge sets a gauge back to zero.
func (s *ExecutionStats) ResetGauge(key string) {
	s.mu.Lock()
	delete(s.gauges, key)
	s.mu.Unlock()
}

// GetGauge returns a gauge's current value (zero if unset).
func (s *ExecutionStats) GetGauge(key string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gauges[key]
}

// checkLimit signals the owning ExecutionContext when the updated
// value exceeds a configured limit.
func (s *ExecutionStats) checkLimit(key string, value float64) {
	if s.execCtx == nil {
		return
	}
	for _, limit := range s.execCtx.Limits() {
		if limit.matches(key) && value > limit.MaxValue {
			s.execCtx.limitExceeded(limit)
			return
		}
	}
}
