package timer

import (
	"sync"
	"time"

	"github.com/timehub/timehub/pkg/clock"
)

// DefaultDuration is the countdown length on first launch
const DefaultDuration = 5 * time.Minute

// Countdown is a pausable countdown timer. Remaining time is derived from a
// deadline, so a late tick never loses time.
type Countdown struct {
	mu sync.Mutex

	clock    clock.Clock
	duration time.Duration
	left     time.Duration // remaining while paused
	deadline time.Time     // set while running
	running  bool
	finished bool
}

// NewCountdown returns a stopped countdown of duration d
func NewCountdown(c clock.Clock, d time.Duration) *Countdown {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Countdown{clock: c, duration: d, left: d}
}

// SetDuration changes the length and resets the countdown
func (t *Countdown) SetDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.duration = d
	t.resetLocked()
}

// Duration returns the configured length
func (t *Countdown) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// Start resumes the countdown. A finished countdown restarts from its full length.
func (t *Countdown) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	if t.left <= 0 {
		t.left = t.duration
	}
	t.finished = false
	t.running = true
	t.deadline = t.clock.Now().Add(t.left)
}

// Pause freezes the remaining time. It does nothing once the deadline has passed.
func (t *Countdown) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	left := t.remainingLocked(t.clock.Now())
	if left <= 0 {
		// Already at zero: keep running so the next Tick reports the finish
		return
	}
	t.left = left
	t.running = false
}

// Reset stops the countdown and restores the full length
func (t *Countdown) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

func (t *Countdown) resetLocked() {
	t.running = false
	t.finished = false
	t.left = t.duration
}

// Remaining returns the time left, rounded up to whole seconds for display
func (t *Countdown) Remaining(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.remainingLocked(now)
	if rem := r % time.Second; rem != 0 {
		r += time.Second - rem
	}
	return r
}

func (t *Countdown) remainingLocked(now time.Time) time.Duration {
	if !t.running {
		return t.left
	}
	r := t.deadline.Sub(now)
	if r < 0 {
		return 0
	}
	return r
}

// Tick reports true exactly once, on the tick where the countdown reaches zero
func (t *Countdown) Tick(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running || t.remainingLocked(now) > 0 {
		return false
	}
	t.running = false
	t.finished = true
	t.left = 0
	return true
}

// Running reports whether the countdown is counting down
func (t *Countdown) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Finished reports whether the countdown reached zero and has not been reset
func (t *Countdown) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}
