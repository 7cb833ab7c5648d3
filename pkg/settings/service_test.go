package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
	"github.com/timehub/timehub/pkg/store"
)

func newService(t *testing.T) (*Service, *store.ConfigStore) {
	t.Helper()
	cs := store.NewConfigStore(store.NewMemoryPreferences(), zap.NewNop())
	return NewService(cs, zap.NewNop()), cs
}

func TestService_StartsWithDefaults(t *testing.T) {
	s, _ := newService(t)
	assert.Equal(t, models.DefaultSettings(), s.Get())
}

func TestService_UpdateNotifiesEverySubscriber(t *testing.T) {
	s, cs := newService(t)

	var clockView, miniView []models.SettingChange
	s.Subscribe(func(c models.SettingChange) { clockView = append(clockView, c) })
	s.Subscribe(func(c models.SettingChange) { miniView = append(miniView, c) })

	require.NoError(t, s.Update(models.SettingClockColor, "green"))
	require.NoError(t, s.Update(models.SettingUse12HourFormat, false))

	want := []models.SettingChange{
		{Setting: models.SettingClockColor, Value: models.ClockColorGreen},
		{Setting: models.SettingUse12HourFormat, Value: false},
	}
	assert.Equal(t, want, clockView)
	assert.Equal(t, want, miniView)

	persisted := cs.LoadSettings()
	assert.Equal(t, models.ClockColorGreen, persisted.ClockColor)
	assert.False(t, persisted.Use12HourFormat)
	assert.True(t, persisted.ShowDate)
}

func TestService_Unsubscribe(t *testing.T) {
	s, _ := newService(t)

	calls := 0
	cancel := s.Subscribe(func(models.SettingChange) { calls++ })

	require.NoError(t, s.Update(models.SettingShowDate, false))
	cancel()
	cancel()
	require.NoError(t, s.Update(models.SettingShowDate, true))

	assert.Equal(t, 1, calls)
}

func TestService_RejectsBadUpdates(t *testing.T) {
	s, _ := newService(t)

	calls := 0
	s.Subscribe(func(models.SettingChange) { calls++ })

	assert.ErrorIs(t, s.Update("fontSize", 12), ErrUnknownSetting)
	assert.ErrorIs(t, s.Update(models.SettingShowDate, "yes"), ErrInvalidSetting)
	assert.ErrorIs(t, s.Update(models.SettingClockColor, "orange"), ErrInvalidSetting)
	assert.ErrorIs(t, s.Update(models.SettingClockColor, 3), ErrInvalidSetting)

	assert.Zero(t, calls)
	assert.Equal(t, models.DefaultSettings(), s.Get())
}

func TestService_LoadsPersistedSettings(t *testing.T) {
	prefs := store.NewMemoryPreferences()
	cs := store.NewConfigStore(prefs, zap.NewNop())
	require.NoError(t, cs.SaveSettings(models.Settings{Use12HourFormat: false, ShowDate: false, ClockColor: models.ClockColorRed}))

	s := NewService(cs, zap.NewNop())
	assert.Equal(t, models.ClockColorRed, s.Get().ClockColor)
	assert.False(t, s.Get().ShowDate)
}
