package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock_StepsOnEveryRead(t *testing.T) {
	// Arrange
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start, time.Second)

	// Act
	first := clock.Now()
	second := clock.Now()
	clock.Advance(time.Hour)
	third := clock.Now()

	// Assert
	assert.Equal(t, start, first)
	assert.Equal(t, start.Add(time.Second), second)
	assert.Equal(t, start.Add(2*time.Second+time.Hour), third)
}

func TestRealClock_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewRealClock().Now().Location())
}
