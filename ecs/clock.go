package ecs

import "time"

// TickRate matches ebiten's default 60 TPS.
const TickRate = 60

// DefaultTimeStep is one tick at TickRate, truncated to whole nanoseconds.
const DefaultTimeStep = time.Second / TickRate

// Clock is the fixed-step simulation clock advanced once per scheduler tick.
//
// With a tick rate set, Elapsed is derived from the frame count and Step is
// the difference between consecutive ticks, so a second of ticks always sums
// to exactly one second.
type Clock struct {
	Step    time.Duration
	Elapsed time.Duration
	Frame   uint64

	rate      int
	baseTime  time.Duration
	baseFrame uint64
}

// SetTickRate makes the clock run at rate ticks per second. Non-positive
// rates are ignored.
func SetTickRate(w *World, rate int) {
	if w == nil || rate <= 0 {
		return
	}
	c := &w.clock
	c.rate = rate
	c.baseTime = c.Elapsed
	c.baseFrame = c.Frame
	c.Step = time.Second / time.Duration(rate)
}

// SetTimeStep changes the duration of one tick and drops any tick rate.
// Non-positive steps are ignored.
func SetTimeStep(w *World, step time.Duration) {
	if w == nil || step <= 0 {
		return
	}
	w.clock.rate = 0
	w.clock.Step = step
}

// Delta returns the duration of the current tick.
func Delta(w *World) time.Duration {
	if w == nil {
		return 0
	}
	return w.clock.Step
}

// Elapsed returns the simulated time including the current tick.
func Elapsed(w *World) time.Duration {
	if w == nil {
		return 0
	}
	return w.clock.Elapsed
}

// Frame returns the number of ticks run so far.
func Frame(w *World) uint64 {
	if w == nil {
		return 0
	}
	return w.clock.Frame
}

func advanceClock(w *World) {
	c := &w.clock
	c.Frame++
	if c.rate > 0 {
		next := c.baseTime + time.Duration(c.Frame-c.baseFrame)*time.Second/time.Duration(c.rate)
		c.Step = next - c.Elapsed
		c.Elapsed = next
		return
	}
	if c.Step <= 0 {
		c.Step = DefaultTimeStep
	}
	c.Elapsed += c.Step
}
