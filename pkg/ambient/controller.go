// Package ambient plays looping background sounds with a volume control and
// an optional sleep timer. Failures here are reported to the caller and
// never reach the alarm scheduler or the timers.
package ambient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/audio"
	"github.com/timehub/timehub/pkg/clock"
)

// Output plays decoded PCM
type Output interface {
	Play(pcm []byte, loop bool) (audio.Playback, error)
}

// Loader resolves a catalog id to decoded PCM
type Loader interface {
	PCM(ctx context.Context, soundID string) ([]byte, error)
}

// State is a snapshot for the UI
type State struct {
	SoundID   string // empty when nothing plays
	Volume    float64
	SleepEnds time.Time // zero when no sleep timer is set
}

// Controller owns at most one playing ambient sound
type Controller struct {
	out   Output
	lib   Loader
	clock clock.Clock
	log   *zap.Logger

	mu        sync.Mutex
	playing   audio.Playback
	soundID   string
	volume    float64
	sleep     clock.Timer
	sleepEnds time.Time
	onChange  func(State)
}

// NewController creates a controller at the given volume
func NewController(out Output, lib Loader, clk clock.Clock, volume float64, log *zap.Logger) *Controller {
	return &Controller{
		out:    out,
		lib:    lib,
		clock:  clk,
		log:    log,
		volume: clampVolume(volume),
	}
}

// OnChange registers fn to be called after every state change
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Play loads soundID and loops it, replacing whatever was playing.
// The sleep timer, if any, keeps running.
func (c *Controller) Play(ctx context.Context, soundID string) error {
	pcm, err := c.lib.PCM(ctx, soundID)
	if err != nil {
		c.log.Warn("failed to load ambient sound", zap.String("sound", soundID), zap.Error(err))
		return fmt.Errorf("load %s: %w", soundID, err)
	}

	c.mu.Lock()
	c.stopPlaybackLocked()
	pb, err := c.out.Play(pcm, true)
	if err != nil {
		c.mu.Unlock()
		c.log.Warn("failed to play ambient sound", zap.String("sound", soundID), zap.Error(err))
		c.notify()
		return fmt.Errorf("play %s: %w", soundID, err)
	}
	pb.SetVolume(c.volume)
	c.playing = pb
	c.soundID = soundID
	c.mu.Unlock()

	c.log.Info("ambient sound started", zap.String("sound", soundID))
	c.notify()
	return nil
}

// Stop ends playback and cancels the sleep timer
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopPlaybackLocked()
	c.cancelSleepLocked()
	c.mu.Unlock()
	c.notify()
}

// SetVolume changes the volume of the current and future sounds
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	c.volume = clampVolume(v)
	if c.playing != nil {
		c.playing.SetVolume(c.volume)
	}
	c.mu.Unlock()
	c.notify()
}

// SetSleepTimer stops playback after the given minutes. Zero or less cancels it.
func (c *Controller) SetSleepTimer(minutes int) {
	c.mu.Lock()
	c.cancelSleepLocked()
	if minutes > 0 {
		d := time.Duration(minutes) * time.Minute
		c.sleepEnds = c.clock.Now().Add(d)
		var t clock.Timer
		t = c.clock.AfterFunc(d, func() {
			c.mu.Lock()
			if c.sleep != t {
				c.mu.Unlock()
				return
			}
			c.sleep = nil
			c.sleepEnds = time.Time{}
			c.stopPlaybackLocked()
			c.mu.Unlock()
			c.log.Info("sleep timer ended ambient sound")
			c.notify()
		})
		c.sleep = t
	}
	c.mu.Unlock()
	c.notify()
}

// SleepRemaining returns the time left on the sleep timer
func (c *Controller) SleepRemaining(now time.Time) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sleepEnds.IsZero() {
		return 0, false
	}
	left := c.sleepEnds.Sub(now)
	if left < 0 {
		left = 0
	}
	return left, true
}

// State returns the current snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{SoundID: c.soundID, Volume: c.volume, SleepEnds: c.sleepEnds}
}

func (c *Controller) stopPlaybackLocked() {
	if c.playing != nil {
		c.playing.Stop()
		c.playing = nil
		c.log.Debug("ambient sound stopped", zap.String("sound", c.soundID))
	}
	c.soundID = ""
}

func (c *Controller) cancelSleepLocked() {
	if c.sleep != nil {
		c.sleep.Stop()
		c.sleep = nil
	}
	c.sleepEnds = time.Time{}
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	st := c.stateLocked()
	c.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
