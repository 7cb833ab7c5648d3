package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timehub/timehub/pkg/clock"
)

func TestStopwatch_PauseResume(t *testing.T) {
	fc := clock.NewFake(time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC))
	sw := New(fc)

	sw.Toggle()
	fc.Advance(1500 * time.Millisecond)
	sw.Toggle()
	fc.Advance(time.Minute)
	assert.Equal(t, 1500*time.Millisecond, sw.Elapsed(fc.Now()))

	sw.Toggle()
	fc.Advance(250 * time.Millisecond)
	assert.Equal(t, 1750*time.Millisecond, sw.Elapsed(fc.Now()))
	assert.True(t, sw.Running())
}

func TestStopwatch_LapsNewestFirst(t *testing.T) {
	fc := clock.NewFake(time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC))
	sw := New(fc)

	_, ok := sw.Lap()
	assert.False(t, ok, "no laps while stopped")

	sw.Toggle()
	fc.Advance(10 * time.Second)
	first, ok := sw.Lap()
	require.True(t, ok)
	fc.Advance(4 * time.Second)
	second, ok := sw.Lap()
	require.True(t, ok)

	assert.Equal(t, Lap{ID: 1, Split: 10 * time.Second, Total: 10 * time.Second}, first)
	assert.Equal(t, Lap{ID: 2, Split: 4 * time.Second, Total: 14 * time.Second}, second)
	assert.Equal(t, []Lap{second, first}, sw.Laps())
}

func TestStopwatch_Reset(t *testing.T) {
	fc := clock.NewFake(time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC))
	sw := New(fc)
	sw.Toggle()
	fc.Advance(time.Second)
	sw.Lap()

	sw.Reset()
	assert.False(t, sw.Running())
	assert.Zero(t, sw.Elapsed(fc.Now()))
	assert.Empty(t, sw.Laps())
}
