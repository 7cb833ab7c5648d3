package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
)

func TestAlarmStore_MissingRecordLoadsEmpty(t *testing.T) {
	s := NewAlarmStore(NewMemoryPreferences(), zap.NewNop())

	alarms := s.LoadAlarms()
	assert.NotNil(t, alarms)
	assert.Empty(t, alarms)
}

func TestAlarmStore_MalformedRecordLoadsEmpty(t *testing.T) {
	prefs := NewMemoryPreferences()
	prefs.SetString("alarms", `[{"id":"a1","time":"07:30"`)
	s := NewAlarmStore(prefs, zap.NewNop())

	assert.Empty(t, s.LoadAlarms())
}

func TestAlarmStore_SaveLoadKeepsOrderAndFlags(t *testing.T) {
	s := NewAlarmStore(NewMemoryPreferences(), zap.NewNop())
	in := []models.Alarm{
		{ID: "b", Time: "22:15", Enabled: false, Triggered: false},
		{ID: "a", Time: "06:45", Enabled: true, Triggered: true},
	}

	require.NoError(t, s.SaveAlarms(in))
	assert.Equal(t, in, s.LoadAlarms())
}

func TestAlarmStore_DropsInvalidEntries(t *testing.T) {
	prefs := NewMemoryPreferences()
	prefs.SetString("alarms", `[
		{"id":"ok","time":"7:05","enabled":true},
		{"id":"","time":"08:00","enabled":true},
		{"id":"bad-time","time":"25:61","enabled":true},
		{"id":"ok","time":"09:00","enabled":true}
	]`)
	s := NewAlarmStore(prefs, zap.NewNop())

	alarms := s.LoadAlarms()
	require.Len(t, alarms, 1)
	assert.Equal(t, "ok", alarms[0].ID)
	assert.Equal(t, "07:05", alarms[0].Time)
}

func TestConfigStore_SettingsDefaults(t *testing.T) {
	prefs := NewMemoryPreferences()
	cs := NewConfigStore(prefs, zap.NewNop())

	assert.Equal(t, models.DefaultSettings(), cs.LoadSettings())

	prefs.SetString("clockSettings", "not json")
	assert.Equal(t, models.DefaultSettings(), cs.LoadSettings())

	prefs.SetString("clockSettings", `{"clockColor":"orange"}`)
	assert.Equal(t, models.DefaultSettings(), cs.LoadSettings())
}

func TestConfigStore_PartialSettingsKeepDefaults(t *testing.T) {
	prefs := NewMemoryPreferences()
	prefs.SetString("clockSettings", `{"showDate":false}`)
	cs := NewConfigStore(prefs, zap.NewNop())

	got := cs.LoadSettings()
	assert.True(t, got.Use12HourFormat)
	assert.False(t, got.ShowDate)
	assert.Equal(t, models.ClockColorDefault, got.ClockColor)
}

func TestConfigStore_SettingsRoundTrip(t *testing.T) {
	cs := NewConfigStore(NewMemoryPreferences(), zap.NewNop())
	want := models.Settings{Use12HourFormat: false, ShowDate: true, ClockColor: models.ClockColorPurple}

	require.NoError(t, cs.SaveSettings(want))
	assert.Equal(t, want, cs.LoadSettings())
}

func TestConfigStore_ConfigSanitized(t *testing.T) {
	prefs := NewMemoryPreferences()
	prefs.SetInt("hold_time_seconds", 30)
	prefs.SetInt("timer_duration", -5)
	prefs.SetFloat("ambient_volume", 3)
	cs := NewConfigStore(prefs, zap.NewNop())

	cfg := cs.Load()
	assert.Equal(t, 10, cfg.HoldTimeSeconds)
	assert.Equal(t, 300, cfg.TimerDuration)
	assert.Equal(t, 0.5, cfg.AmbientVolume)
	assert.True(t, cfg.StopHotkey)

	cfg.AutoStart = true
	cfg.SleepTimerMinutes = 45
	cs.Save(cfg)
	again := cs.Load()
	assert.True(t, again.AutoStart)
	assert.Equal(t, 45, again.SleepTimerMinutes)
}
