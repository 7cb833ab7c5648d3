// Package settings owns the clock display settings and notifies every
// subscribed view when one of them changes.
package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
)

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidSetting = errors.New("invalid setting value")
)

var validate = validator.New()

// Repository persists the settings record
type Repository interface {
	LoadSettings() models.Settings
	SaveSettings(models.Settings) error
}

// Service holds the current settings
type Service struct {
	mu      sync.RWMutex
	repo    Repository
	log     *zap.Logger
	current models.Settings

	subMu  sync.Mutex
	subs   map[int]func(models.SettingChange)
	nextID int
}

// NewService loads the stored settings
func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		log:     log,
		current: repo.LoadSettings(),
		subs:    make(map[int]func(models.SettingChange)),
	}
}

// Get returns the current settings
func (s *Service) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn for every future change. Call the returned func to unsubscribe.
func (s *Service) Subscribe(fn func(models.SettingChange)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Update changes one setting, persists the record and notifies subscribers
func (s *Service) Update(setting string, value any) error {
	s.mu.Lock()
	next := s.current

	switch setting {
	case models.SettingUse12HourFormat:
		v, ok := value.(bool)
		if !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s wants a bool, got %T", ErrInvalidSetting, setting, value)
		}
		next.Use12HourFormat = v
	case models.SettingShowDate:
		v, ok := value.(bool)
		if !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s wants a bool, got %T", ErrInvalidSetting, setting, value)
		}
		next.ShowDate = v
	case models.SettingClockColor:
		switch v := value.(type) {
		case models.ClockColor:
			next.ClockColor = v
		case string:
			next.ClockColor = models.ClockColor(v)
		default:
			s.mu.Unlock()
			return fmt.Errorf("%w: %s wants a color, got %T", ErrInvalidSetting, setting, value)
		}
		value = next.ClockColor
	default:
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownSetting, setting)
	}

	if err := validate.Struct(next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if err := s.repo.SaveSettings(next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save settings: %w", err)
	}
	s.current = next
	s.mu.Unlock()

	s.log.Debug("setting changed", zap.String("setting", setting), zap.Any("value", value))
	s.notify(models.SettingChange{Setting: setting, Value: value})
	return nil
}

func (s *Service) notify(change models.SettingChange) {
	s.subMu.Lock()
	fns := make([]func(models.SettingChange), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}
