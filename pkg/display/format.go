// Package display formats clock, countdown and stopwatch readings.
package display

import (
	"fmt"
	"image/color"
	"time"

	"github.com/timehub/timehub/pkg/models"
)

// FormatClock renders the clock face: "3:04:05 PM" or "15:04:05"
func FormatClock(t time.Time, use12h bool) string {
	if use12h {
		return t.Format("3:04:05 PM")
	}
	return t.Format("15:04:05")
}

// FormatDate renders the date line under the clock
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatCountdown renders remaining time as MM:SS, or H:MM:SS from one hour up
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatStopwatch renders elapsed time as MM:SS.cc (hundredths)
func FormatStopwatch(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := int64(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d.%02d", ms/60000, ms%60000/1000, ms%1000/10)
}

// ClockColorRGBA maps a clock color to its display color. The default color
// returns nil so the theme foreground is used.
func ClockColorRGBA(c models.ClockColor) color.Color {
	switch c {
	case models.ClockColorBlue:
		return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	case models.ClockColorGreen:
		return color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	case models.ClockColorPurple:
		return color.NRGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 0xff}
	case models.ClockColorRed:
		return color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	default:
		return nil
	}
}
