// Package engine drives games at a fixed simulation rate.
//
// A Scheduler converts wall-clock frames into a whole number of fixed ticks,
// and a Session ties a game to its scheduler, input latch and autopilot.
// Everything here runs on the caller's goroutine; the host (Bubble Tea's
// Update loop) guarantees frames and input never interleave.
package engine

import (
	"math"
	"time"
)

// Defaults for the fixed-timestep loop.
const (
	DefaultTickRate      = 60
	DefaultMaxFrameDelta = 100 * time.Millisecond
)

// Scheduler accumulates elapsed time and releases it in fixed slices.
// The accumulator is kept in integer nanoseconds so leftover time never
// drifts.
type Scheduler struct {
	slice    time.Duration
	maxDelta time.Duration
	acc      time.Duration
	last     time.Time
	hasLast  bool
	paused   bool
	ticks    uint64
}

// NewScheduler creates a scheduler. Non-positive arguments fall back to
// DefaultTickRate and DefaultMaxFrameDelta.
func NewScheduler(tickRate int, maxDelta time.Duration) *Scheduler {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	if maxDelta <= 0 {
		maxDelta = DefaultMaxFrameDelta
	}
	return &Scheduler{
		slice:    time.Second / time.Duration(tickRate),
		maxDelta: maxDelta,
	}
}

// Slice returns the duration of one tick.
func (s *Scheduler) Slice() time.Duration {
	return s.slice
}

// Frame reports how many ticks are due at wall-clock time now.
// The first frame after construction or Resume only records the timestamp.
func (s *Scheduler) Frame(now time.Time) int {
	if s.paused {
		return 0
	}
	if !s.hasLast {
		s.last = now
		s.hasLast = true
		return 0
	}
	delta := now.Sub(s.last)
	s.last = now
	return s.Advance(delta)
}

// Advance adds delta to the accumulator and removes the whole slices it
// now contains. Negative deltas count as zero and large ones are clamped,
// so a stalled host never triggers a burst of catch-up ticks.
func (s *Scheduler) Advance(delta time.Duration) int {
	if s.paused {
		return 0
	}
	if delta < 0 {
		delta = 0
	}
	if delta > s.maxDelta {
		delta = s.maxDelta
	}
	s.acc += delta
	n := int(s.acc / s.slice)
	s.acc -= time.Duration(n) * s.slice
	s.ticks += uint64(n)
	return n
}

// AdvanceSeconds is Advance for hosts that measure time in float seconds.
// NaN, infinities and negative values count as zero.
func (s *Scheduler) AdvanceSeconds(sec float64) int {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		sec = 0
	}
	// Clamp before converting so huge values cannot overflow Duration.
	if sec > s.maxDelta.Seconds() {
		sec = s.maxDelta.Seconds()
	}
	return s.Advance(time.Duration(sec * float64(time.Second)))
}

// Leftover returns the accumulated time not yet consumed by a tick.
// It is always in [0, Slice()).
func (s *Scheduler) Leftover() time.Duration {
	return s.acc
}

// Ticks returns the total number of ticks released so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Pause stops releasing ticks until Resume.
func (s *Scheduler) Pause() {
	s.paused = true
	s.hasLast = false
}

// Resume restarts the clock. Time spent paused is not simulated.
func (s *Scheduler) Resume() {
	s.paused = false
	s.hasLast = false
}

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool {
	return s.paused
}
