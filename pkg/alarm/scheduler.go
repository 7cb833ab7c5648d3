// Package alarm decides when daily alarms fire.
//
// A Scheduler is ticked once per second. Each alarm fires at most once per
// calendar day: firing sets its Triggered flag, which is cleared only by a
// midnight rollover or by re-enabling the alarm. While one alarm is active
// (ringing) no other alarm can fire.
package alarm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/clock"
	"github.com/timehub/timehub/pkg/models"
)

var (
	ErrAlarmNotFound = errors.New("alarm not found")
	ErrInvalidTime   = errors.New("invalid alarm time")
)

// Repository persists the ordered alarm list
type Repository interface {
	LoadAlarms() []models.Alarm
	SaveAlarms(alarms []models.Alarm) error
}

// Sound is a playing alarm sound
type Sound interface {
	Stop()
}

// Ringer starts the alarm sound. It may fail; the alarm still fires.
type Ringer func() (Sound, error)

// Decision is the outcome of one tick
type Decision struct {
	Fired bool
	Alarm models.Alarm
}

// Scheduler owns the alarm collection and the active-alarm marker
type Scheduler struct {
	mu sync.Mutex

	repo   Repository
	clock  clock.Clock
	log    *zap.Logger
	ringer Ringer

	alarms   []models.Alarm // insertion order decides ties
	activeID string
	sound    Sound
	lastDate string

	listeners []func(models.Alarm)
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithRinger sets the sound started when an alarm fires
func WithRinger(r Ringer) Option {
	return func(s *Scheduler) { s.ringer = r }
}

// WithClock replaces the wall clock used by Run and Next
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// NewScheduler loads the stored alarms and returns a Scheduler
func NewScheduler(repo Repository, log *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		repo:  repo,
		clock: clock.Real{},
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.alarms = repo.LoadAlarms()
	if s.alarms == nil {
		s.alarms = []models.Alarm{}
	}
	return s
}

// Evaluate returns the index of the alarm that should fire at now, or -1.
// Nothing fires while another alarm is active. Among enabled, untriggered
// alarms matching the current HH:MM the first in slice order wins.
func Evaluate(now time.Time, alarms []models.Alarm, activeID string) int {
	if activeID != "" {
		return -1
	}
	current := models.ClockTime(now)
	for i, a := range alarms {
		if a.Enabled && !a.Triggered && a.Time == current {
			return i
		}
	}
	return -1
}

// OnFire registers a callback invoked after an alarm fires
func (s *Scheduler) OnFire(fn func(models.Alarm)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Tick evaluates one clock tick. Rollover detection and matching both use now.
func (s *Scheduler) Tick(now time.Time) Decision {
	s.mu.Lock()

	s.rolloverLocked(now)

	idx := Evaluate(now, s.alarms, s.activeID)
	if idx < 0 {
		s.mu.Unlock()
		return Decision{}
	}

	s.alarms[idx].Triggered = true
	fired := s.alarms[idx]
	s.activeID = fired.ID
	s.persistLocked()
	listeners := append([]func(models.Alarm){}, s.listeners...)
	s.mu.Unlock()

	// The ringer may block while the audio device opens
	s.startSound(fired)

	s.log.Info("alarm fired", zap.String("alarm_id", fired.ID), zap.String("time", fired.Time))
	for _, fn := range listeners {
		fn(fired)
	}
	return Decision{Fired: true, Alarm: fired}
}

// RolloverIfNewDay clears every Triggered flag when now falls on a different
// calendar date than the previous tick. It reports whether a reset happened.
func (s *Scheduler) RolloverIfNewDay(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rolloverLocked(now)
}

func (s *Scheduler) rolloverLocked(now time.Time) bool {
	date := models.CalendarDate(now)
	if s.lastDate == "" || s.lastDate == date {
		s.lastDate = date
		return false
	}
	s.lastDate = date

	for i := range s.alarms {
		s.alarms[i].Triggered = false
	}
	s.persistLocked()
	s.log.Info("new day, alarms re-armed", zap.String("date", date))
	return true
}

func (s *Scheduler) startSound(a models.Alarm) {
	if s.ringer == nil {
		return
	}
	sound, err := s.ringer()
	if err != nil {
		s.log.Warn("alarm sound unavailable", zap.String("alarm_id", a.ID), zap.Error(err))
		return
	}

	s.mu.Lock()
	if s.activeID != a.ID || s.sound != nil {
		// Stopped or deleted while the sound was starting
		s.mu.Unlock()
		sound.Stop()
		return
	}
	s.sound = sound
	s.mu.Unlock()
}

// Stop silences the active alarm. Triggered stays set so the alarm does not
// fire again until the next day or a re-enable.
func (s *Scheduler) Stop() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *Scheduler) stopLocked() (string, bool) {
	if s.sound != nil {
		s.sound.Stop()
		s.sound = nil
	}
	if s.activeID == "" {
		return "", false
	}
	id := s.activeID
	s.activeID = ""
	s.log.Info("alarm stopped", zap.String("alarm_id", id))
	return id, true
}

// Active returns the ringing alarm, if any
func (s *Scheduler) Active() (models.Alarm, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == "" {
		return models.Alarm{}, false
	}
	for _, a := range s.alarms {
		if a.ID == s.activeID {
			return a, true
		}
	}
	return models.Alarm{}, false
}

// Add creates an enabled alarm at the given time of day
func (s *Scheduler) Add(clockTime string) (models.Alarm, error) {
	normalized, err := models.NormalizeClockTime(clockTime)
	if err != nil {
		return models.Alarm{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	a := models.Alarm{
		ID:      uuid.NewString(),
		Time:    normalized,
		Enabled: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.alarms = append(s.alarms, a)
	s.persistLocked()
	s.log.Info("alarm added", zap.String("alarm_id", a.ID), zap.String("time", a.Time))
	return a, nil
}

// Import appends alarms whose ids are not already present and returns how many were added
func (s *Scheduler) Import(alarms []models.Alarm) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool, len(s.alarms))
	for _, a := range s.alarms {
		existing[a.ID] = true
	}

	added := 0
	for _, a := range alarms {
		normalized, err := models.NormalizeClockTime(a.Time)
		if err != nil {
			s.log.Warn("skipping imported alarm", zap.String("time", a.Time), zap.Error(err))
			continue
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if existing[a.ID] {
			continue
		}
		a.Time = normalized
		a.Triggered = false
		existing[a.ID] = true
		s.alarms = append(s.alarms, a)
		added++
	}
	if added > 0 {
		s.persistLocked()
	}
	return added
}

// Toggle flips Enabled. Enabling re-arms the alarm.
func (s *Scheduler) Toggle(id string) (models.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alarms {
		if s.alarms[i].ID != id {
			continue
		}
		s.alarms[i].Enabled = !s.alarms[i].Enabled
		if s.alarms[i].Enabled {
			s.alarms[i].Triggered = false
		}
		s.persistLocked()
		return s.alarms[i], nil
	}
	return models.Alarm{}, ErrAlarmNotFound
}

// Delete removes an alarm permanently, stopping it if it is ringing
func (s *Scheduler) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alarms {
		if s.alarms[i].ID != id {
			continue
		}
		if s.activeID == id {
			s.stopLocked()
		}
		s.alarms = append(s.alarms[:i], s.alarms[i+1:]...)
		s.persistLocked()
		s.log.Info("alarm deleted", zap.String("alarm_id", id))
		return nil
	}
	return ErrAlarmNotFound
}

// Alarms returns a copy of the alarms in insertion order
func (s *Scheduler) Alarms() []models.Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Alarm{}, s.alarms...)
}

// Next returns the enabled alarm that will fire soonest after now, with its
// fire time. Alarms already triggered today are due tomorrow.
func (s *Scheduler) Next(now time.Time) (models.Alarm, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		best   models.Alarm
		bestAt time.Time
		found  bool
	)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	current := now.Truncate(time.Minute)
	for _, a := range s.alarms {
		if !a.Enabled {
			continue
		}
		minute, err := a.MinuteOfDay()
		if err != nil {
			continue
		}
		at := midnight.Add(time.Duration(minute) * time.Minute)
		if at.Before(current) || a.Triggered {
			at = midnight.AddDate(0, 0, 1).Add(time.Duration(minute) * time.Minute)
		}
		if !found || at.Before(bestAt) {
			best, bestAt, found = a, at, true
		}
	}
	return best, bestAt, found
}

// Run ticks the scheduler every interval until ctx is canceled
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Tick(s.clock.Now())
	for {
		select {
		case <-ctx.Done():
			s.log.Info("alarm scheduler stopping")
			return
		case <-ticker.C:
			s.Tick(s.clock.Now())
		}
	}
}

func (s *Scheduler) persistLocked() {
	if err := s.repo.SaveAlarms(s.alarms); err != nil {
		s.log.Error("failed to persist alarms", zap.Error(err))
	}
}
