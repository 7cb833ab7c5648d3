package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/timehub/timehub/pkg/clock"
)

func newFake() *clock.Fake {
	return clock.NewFake(time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC))
}

func TestCountdown_DefaultsToFiveMinutes(t *testing.T) {
	c := NewCountdown(newFake(), 0)
	assert.Equal(t, DefaultDuration, c.Duration())
	assert.Equal(t, 5*time.Minute, c.Remaining(time.Time{}))
}

func TestCountdown_FinishesOnce(t *testing.T) {
	fc := newFake()
	c := NewCountdown(fc, 3*time.Second)
	c.Start()

	fc.Advance(time.Second)
	assert.False(t, c.Tick(fc.Now()))
	assert.Equal(t, 2*time.Second, c.Remaining(fc.Now()))

	fc.Advance(2 * time.Second)
	assert.True(t, c.Tick(fc.Now()))
	assert.False(t, c.Tick(fc.Now()))
	assert.True(t, c.Finished())
	assert.False(t, c.Running())
	assert.Zero(t, c.Remaining(fc.Now()))
}

func TestCountdown_PauseFreezesRemaining(t *testing.T) {
	fc := newFake()
	c := NewCountdown(fc, time.Minute)
	c.Start()

	fc.Advance(20 * time.Second)
	c.Pause()
	fc.Advance(time.Hour)

	assert.Equal(t, 40*time.Second, c.Remaining(fc.Now()))
	assert.False(t, c.Tick(fc.Now()))

	c.Start()
	fc.Advance(40 * time.Second)
	assert.True(t, c.Tick(fc.Now()))
}

func TestCountdown_PauseAfterDeadlineStillFinishes(t *testing.T) {
	fc := newFake()
	c := NewCountdown(fc, 3*time.Second)
	c.Start()

	fc.Advance(3*time.Second + 20*time.Millisecond)
	c.Pause()

	assert.True(t, c.Tick(fc.Now()))
	assert.True(t, c.Finished())
	assert.False(t, c.Running())
	assert.False(t, c.Tick(fc.Now()))
}

func TestCountdown_RemainingRoundsUp(t *testing.T) {
	fc := newFake()
	c := NewCountdown(fc, 10*time.Second)
	c.Start()

	fc.Advance(1500 * time.Millisecond)
	assert.Equal(t, 9*time.Second, c.Remaining(fc.Now()))
}

func TestCountdown_StartAfterFinishRestarts(t *testing.T) {
	fc := newFake()
	c := NewCountdown(fc, 2*time.Second)
	c.Start()
	fc.Advance(5 * time.Second)
	assert.True(t, c.Tick(fc.Now()))

	c.Start()
	assert.False(t, c.Finished())
	assert.Equal(t, 2*time.Second, c.Remaining(fc.Now()))
}

func TestCountdown_ResetAndSetDuration(t *testing.T) {
	fc := newFake()
	c := NewCountdown(fc, time.Minute)
	c.Start()
	fc.Advance(30 * time.Second)

	c.Reset()
	assert.False(t, c.Running())
	assert.Equal(t, time.Minute, c.Remaining(fc.Now()))

	c.SetDuration(90 * time.Second)
	assert.Equal(t, 90*time.Second, c.Remaining(fc.Now()))

	c.SetDuration(-time.Second)
	assert.Equal(t, 90*time.Second, c.Duration())
}
