package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
)

// ConfigStore handles application config and clock settings persistence
type ConfigStore struct {
	prefs Preferences
	log   *zap.Logger
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(prefs Preferences, log *zap.Logger) *ConfigStore {
	return &ConfigStore{prefs: prefs, log: log}
}

// Load loads application configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	def := models.DefaultConfig()

	config := &models.Config{
		AutoStart:         cs.prefs.BoolWithFallback(keyAutoStart, def.AutoStart),
		HoldTimeSeconds:   cs.prefs.IntWithFallback(keyHoldTimeSeconds, def.HoldTimeSeconds),
		TimerDuration:     cs.prefs.IntWithFallback(keyTimerDuration, def.TimerDuration),
		AmbientVolume:     cs.prefs.FloatWithFallback(keyAmbientVolume, def.AmbientVolume),
		SleepTimerMinutes: cs.prefs.IntWithFallback(keySleepTimerMinutes, def.SleepTimerMinutes),
		StopHotkey:        cs.prefs.BoolWithFallback(keyStopHotkey, def.StopHotkey),
	}

	if config.TimerDuration <= 0 {
		config.TimerDuration = def.TimerDuration
	}
	if config.AmbientVolume < 0 || config.AmbientVolume > 1 {
		config.AmbientVolume = def.AmbientVolume
	}
	if config.SleepTimerMinutes < 0 {
		config.SleepTimerMinutes = 0
	}
	config.HoldTimeSeconds = config.ClampHoldTime()

	return config
}

// Save saves application configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	cs.prefs.SetBool(keyAutoStart, config.AutoStart)
	cs.prefs.SetInt(keyHoldTimeSeconds, config.HoldTimeSeconds)
	cs.prefs.SetInt(keyTimerDuration, config.TimerDuration)
	cs.prefs.SetFloat(keyAmbientVolume, config.AmbientVolume)
	cs.prefs.SetInt(keySleepTimerMinutes, config.SleepTimerMinutes)
	cs.prefs.SetBool(keyStopHotkey, config.StopHotkey)
}

// LoadSettings returns the clock display settings. Fields missing from the
// stored record keep their defaults; a malformed or invalid record loads as
// the defaults.
func (cs *ConfigStore) LoadSettings() models.Settings {
	settings := models.DefaultSettings()

	raw := cs.prefs.String(keyClockSettings)
	if raw == "" {
		return settings
	}

	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		cs.log.Warn("stored clock settings are malformed, using defaults", zap.Error(err))
		return models.DefaultSettings()
	}
	if err := validate.Struct(settings); err != nil {
		cs.log.Warn("stored clock settings are invalid, using defaults", zap.Error(err))
		return models.DefaultSettings()
	}
	return settings
}

// SaveSettings replaces the stored clock display settings
func (cs *ConfigStore) SaveSettings(settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode clock settings: %w", err)
	}
	cs.prefs.SetString(keyClockSettings, string(data))
	return nil
}
