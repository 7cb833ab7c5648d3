package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timehub/timehub/pkg/audio"
)

func run(t *testing.T, now time.Time, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(func() time.Time { return now })
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSleepBedtime(t *testing.T) {
	out, err := run(t, time.Now(), "sleep", "bedtime", "--wake", "7:00 AM")
	require.NoError(t, err)
	assert.Contains(t, out, "To wake up at 7:00 AM")
	assert.Contains(t, out, "suggested: 9:45 PM, 11:15 PM")
	assert.Contains(t, out, "also good: 12:45 AM, 2:15 AM, 3:45 AM, 5:15 AM")
}

func TestSleepBedtime_RequiresWake(t *testing.T) {
	_, err := run(t, time.Now(), "sleep", "bedtime")
	assert.ErrorContains(t, err, "--wake is required")

	_, err = run(t, time.Now(), "sleep", "bedtime", "--wake", "25 o'clock")
	assert.Error(t, err)
}

func TestSleepWakeup(t *testing.T) {
	out, err := run(t, time.Now(), "sleep", "wakeup", "--at", "11:00pm")
	require.NoError(t, err)
	assert.Contains(t, out, "Going to bed at 11:00 PM")
	assert.Contains(t, out, "suggested: 8:15 AM, 9:45 AM")
}

func TestSleepWakeup_DefaultsToNow(t *testing.T) {
	now := time.Date(2026, time.May, 4, 23, 0, 0, 0, time.Local)
	out, err := run(t, now, "sleep", "wakeup")
	require.NoError(t, err)
	assert.Contains(t, out, "Going to bed at 11:00 PM")
}

func TestSounds(t *testing.T) {
	out, err := run(t, time.Now(), "sounds")
	require.NoError(t, err)
	for _, s := range audio.Catalog() {
		assert.Contains(t, out, s.ID)
	}
	assert.Contains(t, out, "(generated)")
}

func TestSelectSounds(t *testing.T) {
	all, err := selectSounds(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(audio.Catalog()))

	some, err := selectSounds([]string{"rain-asmr", "cafe-asmr.mp3"})
	require.NoError(t, err)
	assert.Len(t, some, 2)

	_, err = selectSounds([]string{"thunder"})
	assert.ErrorIs(t, err, audio.ErrSoundNotFound)
}
