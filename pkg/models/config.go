package models

// Config holds desktop application preferences
type Config struct {
	AutoStart         bool    `json:"auto_start"`
	HoldTimeSeconds   int     `json:"hold_time_seconds"`   // stop button hold time
	TimerDuration     int     `json:"timer_duration"`      // seconds
	AmbientVolume     float64 `json:"ambient_volume"`      // 0..1
	SleepTimerMinutes int     `json:"sleep_timer_minutes"` // 0 = play until stopped
	StopHotkey        bool    `json:"stop_hotkey"`         // Ctrl+Shift+S stops a ringing alarm
}

// DefaultConfig returns the preferences used on first launch
func DefaultConfig() *Config {
	return &Config{
		AutoStart:         false,
		HoldTimeSeconds:   2,
		TimerDuration:     300,
		AmbientVolume:     0.5,
		SleepTimerMinutes: 0,
		StopHotkey:        true,
	}
}

// ClampHoldTime keeps the hold time inside the 1-10 second range the UI offers
func (c *Config) ClampHoldTime() int {
	if c.HoldTimeSeconds < 1 {
		return 1
	}
	if c.HoldTimeSeconds > 10 {
		return 10
	}
	return c.HoldTimeSeconds
}
