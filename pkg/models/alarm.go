package models

import (
	"fmt"
	"time"
)

// ClockTimeLayout is the zero-padded 24-hour layout alarms are stored in
const ClockTimeLayout = "15:04"

// Alarm represents a daily wall-clock alarm
type Alarm struct {
	ID        string `json:"id" validate:"required"`                   // Unique identifier (UUID), never reused
	Time      string `json:"time" validate:"required,datetime=15:04"` // Zero-padded HH:MM, 24-hour
	Enabled   bool   `json:"enabled"`                                 // Disabled alarms never fire
	Triggered bool   `json:"triggered"`                               // Fired today and not yet re-armed
}

// ClockTime formats t as the minute-resolution HH:MM string alarms match against
func ClockTime(t time.Time) string {
	return t.Format(ClockTimeLayout)
}

// CalendarDate returns the day-month-year key used to detect midnight rollover
func CalendarDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// NormalizeClockTime accepts H:MM or HH:MM and returns the canonical HH:MM form
func NormalizeClockTime(s string) (string, error) {
	t, err := time.Parse(ClockTimeLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse alarm time %q: %w", s, err)
	}
	return t.Format(ClockTimeLayout), nil
}

// MinuteOfDay returns minutes since midnight for a canonical HH:MM string
func (a Alarm) MinuteOfDay() (int, error) {
	t, err := time.Parse(ClockTimeLayout, a.Time)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
