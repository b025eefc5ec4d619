package core

import "time"

// DefaultMaxFrameFrames is how many fixed steps a single frame may
// contribute when no explicit cap is configured.
const DefaultMaxFrameFrames = 4

// Clock turns a stream of frame timestamps into a whole number of fixed
// update steps. Frame deltas are capped so a stalled terminal or a
// backgrounded session never feeds one huge step to physics.
type Clock struct {
	step     time.Duration
	maxFrame time.Duration

	last   time.Time
	synced bool
	acc    time.Duration

	lastFrame time.Duration
}

// NewClock creates a clock producing tickRate steps per second.
// A non-positive maxFrame defaults to DefaultMaxFrameFrames steps.
func NewClock(tickRate int, maxFrame time.Duration) *Clock {
	if tickRate <= 0 {
		tickRate = DefaultConfig().TickRate
	}
	step := time.Second / time.Duration(tickRate)
	if maxFrame <= 0 {
		maxFrame = step * DefaultMaxFrameFrames
	}
	return &Clock{step: step, maxFrame: maxFrame}
}

// Advance records a frame at now and returns how many fixed steps are due.
// The first call after construction or Resync only sets the reference time.
func (c *Clock) Advance(now time.Time) int {
	if !c.synced {
		c.last = now
		c.synced = true
		c.acc = 0
		c.lastFrame = 0
		return 0
	}

	frame := now.Sub(c.last)
	c.last = now
	if frame < 0 {
		frame = 0
	}
	if frame > c.maxFrame {
		frame = c.maxFrame
	}
	c.lastFrame = frame

	c.acc += frame
	steps := int(c.acc / c.step)
	c.acc -= time.Duration(steps) * c.step
	return steps
}

// Resync drops the reference time and any accumulated remainder.
// Called on resume so paused wall time never reaches the simulation.
func (c *Clock) Resync() {
	c.synced = false
	c.acc = 0
}

// Step returns the fixed step length in seconds.
func (c *Clock) Step() float64 {
	return c.step.Seconds()
}

// StepDuration returns the fixed step length.
func (c *Clock) StepDuration() time.Duration {
	return c.step
}

// Alpha returns how far the clock is into the next step, in [0, 1).
func (c *Clock) Alpha() float64 {
	return float64(c.acc) / float64(c.step)
}

// LastFrame returns the capped duration of the most recent frame.
func (c *Clock) LastFrame() time.Duration {
	return c.lastFrame
}
