package parentassist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockTimeProvider(t *testing.T) {
	fixed := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
	tp := NewMockTimeProvider(fixed)

	assert.Equal(t, fixed, tp.Now())
	assert.Equal(t, "2026-08-29", tp.Today())
	assert.Equal(t, "Saturday", tp.Weekday())
	assert.Equal(t, "15:04", tp.Format("15:04"))
}

func TestDefaultTimeProvider(t *testing.T) {
	tp := NewDefaultTimeProvider()

	today := tp.Today()
	assert.Len(t, today, 10)
	assert.Equal(t, tp.Now().Format("2006-01-02"), today)
	assert.NotEmpty(t, tp.Weekday())
}
