package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_AdvanceRunsDueCallbacks(t *testing.T) {
	start := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	c := NewFake(start)

	var order []string
	c.AfterFunc(2*time.Minute, func() { order = append(order, "second") })
	c.AfterFunc(time.Minute, func() { order = append(order, "first") })
	c.AfterFunc(time.Hour, func() { order = append(order, "late") })

	c.Advance(5 * time.Minute)

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, start.Add(5*time.Minute), c.Now())
}

func TestFake_StoppedTimerDoesNotFire(t *testing.T) {
	c := NewFake(time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC))

	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(time.Minute)
	assert.False(t, fired)
}
