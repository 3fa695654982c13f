package core

import "time"

// Clock is a monotonic time source reporting seconds as a float64.
// Every timing entity reads time through a Clock so tests can drive it.
type Clock interface {
	Now() float64
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() float64

func (f ClockFunc) Now() float64 {
	return f()
}

var processStart = time.Now()

type systemClock struct{}

// Now returns the seconds elapsed since the process started. time.Since
// uses the monotonic reading, so wall clock adjustments do not leak in.
func (systemClock) Now() float64 {
	return time.Since(processStart).Seconds()
}

// SystemClock is the default Clock backed by the runtime monotonic clock.
var SystemClock Clock = systemClock{}

// ManualClock only moves when told to. Useful for simulations and tests.
type ManualClock struct {
	now float64
}

func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() float64 {
	return c.now
}

// Set moves the clock to an absolute time.
func (c *ManualClock) Set(now float64) {
	c.now = now
}

// Advance moves the clock forward by the given number of seconds.
func (c *ManualClock) Advance(seconds float64) {
	c.now += seconds
}

// FrameClock measures the time between frames. Has no effect until started.
type FrameClock struct {
	source    Clock
	startTime float64
	elapsed   float64
	started   bool
}

func NewFrameClock(source Clock) *FrameClock {
	if source == nil {
		source = SystemClock
	}
	return &FrameClock{source: source}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *FrameClock) Update() {
	if c.started {
		c.elapsed = c.source.Now() - c.startTime
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *FrameClock) Start() {
	c.startTime = c.source.Now()
	c.elapsed = 0
	c.started = true
}

// Stops the provided clock. Does not reset elapsed time.
func (c *FrameClock) Stop() {
	c.started = false
}

func (c *FrameClock) Elapsed() float64 {
	return c.elapsed
}
