package store

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
)

var validate = validator.New()

// AlarmStore persists the ordered alarm list as a JSON string preference
type AlarmStore struct {
	prefs Preferences
	log   *zap.Logger
}

// NewAlarmStore creates a new AlarmStore instance
func NewAlarmStore(prefs Preferences, log *zap.Logger) *AlarmStore {
	return &AlarmStore{prefs: prefs, log: log}
}

// LoadAlarms returns the stored alarms in insertion order.
// A missing or malformed record loads as no alarms; individually invalid
// entries are dropped.
func (s *AlarmStore) LoadAlarms() []models.Alarm {
	raw := s.prefs.String(keyAlarms)
	if raw == "" {
		return []models.Alarm{}
	}

	var stored []models.Alarm
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Warn("stored alarm list is malformed, starting empty", zap.Error(err))
		return []models.Alarm{}
	}

	alarms := make([]models.Alarm, 0, len(stored))
	seen := make(map[string]bool)
	for _, a := range stored {
		if normalized, err := models.NormalizeClockTime(a.Time); err == nil {
			a.Time = normalized
		}
		if err := validate.Struct(a); err != nil {
			s.log.Warn("dropping invalid stored alarm", zap.String("alarm_id", a.ID), zap.Error(err))
			continue
		}
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		alarms = append(alarms, a)
	}
	return alarms
}

// SaveAlarms replaces the stored alarm list
func (s *AlarmStore) SaveAlarms(alarms []models.Alarm) error {
	if alarms == nil {
		alarms = []models.Alarm{}
	}
	data, err := json.Marshal(alarms)
	if err != nil {
		return fmt.Errorf("encode alarms: %w", err)
	}
	s.prefs.SetString(keyAlarms, string(data))
	return nil
}
