package store

// Preferences is the slice of fyne.Preferences the stores persist through
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
	IntWithFallback(key string, fallback int) int
	SetInt(key string, value int)
	FloatWithFallback(key string, fallback float64) float64
	SetFloat(key string, value float64)
}

// Preference keys
const (
	keyAlarms            = "alarms"
	keyClockSettings     = "clockSettings"
	keyAutoStart         = "auto_start"
	keyHoldTimeSeconds   = "hold_time_seconds"
	keyTimerDuration     = "timer_duration"
	keyAmbientVolume     = "ambient_volume"
	keySleepTimerMinutes = "sleep_timer_minutes"
	keyStopHotkey        = "stop_hotkey"
)
