// Package sleep computes bedtimes and wake-up times spaced by 90-minute
// sleep cycles on a 24-hour clock.
package sleep

import (
	"fmt"
	"strings"
	"time"
)

const (
	CycleMinutes      = 90
	CyclesPerNight    = 6
	FallAsleepMinutes = 15
	// Offset is a full night of cycles plus the time it takes to fall asleep (9h15m)
	Offset = CyclesPerNight*CycleMinutes + FallAsleepMinutes

	MinutesPerDay  = 1440
	ResultCount    = 6
	SuggestedCount = 2
)

// Mode selects which way the calculation runs
type Mode string

const (
	// ModeBedtime computes bedtimes for a desired wake-up time
	ModeBedtime Mode = "bedtime"
	// ModeWakeup computes wake-up times for going to bed at the anchor time
	ModeWakeup Mode = "wakeup"
)

// Anchor is a 12-hour clock reading
type Anchor struct {
	Hour   int // 1-12
	Minute int // 0-59
	PM     bool
}

func (a Anchor) String() string {
	return fmt.Sprintf("%d:%02d %s", a.Hour, a.Minute, period(a.PM))
}

// Minutes returns the anchor as minutes since midnight
func (a Anchor) Minutes() int {
	return TimeToMinutes(a.Hour, a.Minute, a.PM)
}

// Calculation holds the six candidate times for one request
type Calculation struct {
	Anchor  Anchor
	Mode    Mode
	Minutes [ResultCount]int
	Results [ResultCount]string
}

// Suggested returns the two recommended times
func (c Calculation) Suggested() []string {
	return c.Results[:SuggestedCount]
}

// Alternatives returns the remaining four times
func (c Calculation) Alternatives() []string {
	return c.Results[SuggestedCount:]
}

// TimeToMinutes converts a 12-hour reading to minutes since midnight in [0, 1440)
func TimeToMinutes(hour12, minute int, isPM bool) int {
	hour := hour12
	if isPM && hour != 12 {
		hour += 12
	}
	if !isPM && hour == 12 {
		hour = 0
	}
	return wrap(hour*60 + minute)
}

// MinutesToTime formats minutes since midnight as "H:MM AM|PM", wrapping the input into one day
func MinutesToTime(minutes int) string {
	m := wrap(minutes)
	hour := m / 60
	pm := hour >= 12
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, m%60, period(pm))
}

// ComputeBedtimes returns six bedtimes for waking at wakeMinutes, earliest first
func ComputeBedtimes(wakeMinutes int) [ResultCount]int {
	var out [ResultCount]int
	first := wrap(wakeMinutes - Offset)
	for i := range out {
		out[i] = wrap(first + i*CycleMinutes)
	}
	return out
}

// ComputeWakeups returns six wake-up times for going to bed at bedMinutes
func ComputeWakeups(bedMinutes int) [ResultCount]int {
	var out [ResultCount]int
	first := wrap(bedMinutes + Offset)
	for i := range out {
		out[i] = wrap(first + i*CycleMinutes)
	}
	return out
}

// Calculate runs the calculation for the given mode and anchor
func Calculate(mode Mode, anchor Anchor) Calculation {
	c := Calculation{Anchor: anchor, Mode: mode}
	switch mode {
	case ModeWakeup:
		c.Minutes = ComputeWakeups(anchor.Minutes())
	default:
		c.Mode = ModeBedtime
		c.Minutes = ComputeBedtimes(anchor.Minutes())
	}
	for i, m := range c.Minutes {
		c.Results[i] = MinutesToTime(m)
	}
	return c
}

// AnchorFromTime reads t as a 12-hour anchor
func AnchorFromTime(t time.Time) Anchor {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return Anchor{Hour: hour, Minute: t.Minute(), PM: t.Hour() >= 12}
}

// AnchorFromPicker is the initial picker value for t: minutes rounded down to five
func AnchorFromPicker(t time.Time) Anchor {
	a := AnchorFromTime(t)
	a.Minute = a.Minute / 5 * 5
	return a
}

// ParseAnchor parses readings like "7:00 AM", "7:00am" or "11:45 PM"
func ParseAnchor(s string) (Anchor, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	t, err := time.Parse("3:04PM", normalized)
	if err != nil {
		return Anchor{}, fmt.Errorf("parse time %q: want H:MM AM|PM", s)
	}
	return AnchorFromTime(t), nil
}

func wrap(minutes int) int {
	return ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
}

func period(pm bool) string {
	if pm {
		return "PM"
	}
	return "AM"
}
