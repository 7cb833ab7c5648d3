package stopwatch

import (
	"sync"
	"time"

	"github.com/timehub/timehub/pkg/clock"
)

// Lap is one recorded split
type Lap struct {
	ID    int           // 1-based, in recording order
	Split time.Duration // time since the previous lap (or start)
	Total time.Duration // elapsed time when the lap was taken
}

// Stopwatch measures elapsed time with pause and laps
type Stopwatch struct {
	mu sync.Mutex

	clock    clock.Clock
	running  bool
	started  time.Time     // start of the current running segment
	banked   time.Duration // elapsed time from finished segments
	lapStart time.Duration // elapsed time at the previous lap
	laps     []Lap
}

// New returns a zeroed stopwatch
func New(c clock.Clock) *Stopwatch {
	return &Stopwatch{clock: c}
}

// Toggle starts a stopped stopwatch or pauses a running one
func (s *Stopwatch) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	if s.running {
		s.banked += now.Sub(s.started)
		s.running = false
		return
	}
	s.started = now
	s.running = true
}

// Reset stops the stopwatch and clears laps
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.banked = 0
	s.lapStart = 0
	s.laps = nil
}

// Lap records a split. Laps are only taken while running.
func (s *Stopwatch) Lap() (Lap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return Lap{}, false
	}
	total := s.elapsedLocked(s.clock.Now())
	lap := Lap{
		ID:    len(s.laps) + 1,
		Split: total - s.lapStart,
		Total: total,
	}
	s.lapStart = total
	s.laps = append(s.laps, lap)
	return lap, true
}

// Laps returns the recorded laps, newest first
func (s *Stopwatch) Laps() []Lap {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Lap, len(s.laps))
	for i, l := range s.laps {
		out[len(s.laps)-1-i] = l
	}
	return out
}

// Elapsed returns the measured time at now
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked(now)
}

func (s *Stopwatch) elapsedLocked(now time.Time) time.Duration {
	if !s.running {
		return s.banked
	}
	return s.banked + now.Sub(s.started)
}

// Running reports whether the stopwatch is measuring
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
