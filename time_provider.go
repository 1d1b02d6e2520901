package parentassist

import "time"

// TimeProvider supplies the current time to prompt templates and
// diagnostics. Inject MockTimeProvider in tests for deterministic
// prompts.
//
// Template usage:
//
//	Today is {{.Time.Today}} ({{.Time.Weekday}}).
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time

	// Today returns today's date as YYYY-MM-DD.
	Today() string

	// Weekday returns the current day of the week (e.g. "Monday").
	Weekday() string

	// Format returns the current time in the given Go layout.
	Format(layout string) string
}

// DefaultTimeProvider uses the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a TimeProvider backed by time.Now.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

func (p *DefaultTimeProvider) Today() string {
	return p.Now().Format("2006-01-02")
}

func (p *DefaultTimeProvider) Weekday() string {
	return p.Now().Weekday().String()
}

func (p *DefaultTimeProvider) Format(layout string) string {
	return p.Now().Format(layout)
}

// MockTimeProvider returns a fixed time. For tests.
type MockTimeProvider struct {
	Fixed time.Time
}

// NewMockTimeProvider creates a TimeProvider pinned to the given time.
func NewMockTimeProvider(fixed time.Time) *MockTimeProvider {
	return &MockTimeProvider{Fixed: fixed}
}

func (p *MockTimeProvider) Now() time.Time {
	return p.Fixed
}

func (p *MockTimeProvider) Today() string {
	return p.Fixed.Format("2006-01-02")
}

func (p *MockTimeProvider) Weekday() string {
	return p.Fixed.Weekday().String()
}

func (p *MockTimeProvider) Format(layout string) string {
	return p.Fixed.Format(layout)
}
