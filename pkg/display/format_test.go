package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/timehub/timehub/pkg/models"
)

func TestFormatClock(t *testing.T) {
	ts := time.Date(2026, time.May, 4, 0, 7, 9, 0, time.UTC)
	assert.Equal(t, "12:07:09 AM", FormatClock(ts, true))
	assert.Equal(t, "00:07:09", FormatClock(ts, false))
	assert.Equal(t, "Monday, May 4, 2026", FormatDate(ts))
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "05:00", FormatCountdown(5*time.Minute))
	assert.Equal(t, "00:09", FormatCountdown(9*time.Second))
	assert.Equal(t, "1:01:01", FormatCountdown(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "00:00", FormatCountdown(-time.Second))
}

func TestFormatStopwatch(t *testing.T) {
	assert.Equal(t, "00:00.00", FormatStopwatch(0))
	assert.Equal(t, "01:02.34", FormatStopwatch(62*time.Second+345*time.Millisecond))
}

func TestClockColorRGBA(t *testing.T) {
	assert.Nil(t, ClockColorRGBA(models.ClockColorDefault))
	for _, c := range models.ClockColors[1:] {
		assert.NotNil(t, ClockColorRGBA(c), "color %s", c)
	}
}
