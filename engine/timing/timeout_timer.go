package timing

import (
	"fmt"

	"github.com/spaghettifunk/toolbox/engine/core"
)

type TimerState uint8

const (
	// Timer never started, stopped or reset
	TimerIdle TimerState = iota
	// Timer counts towards its duration on every tick
	TimerActive
	// Timer is frozen until resumed
	TimerPaused
	// Timer reached its duration. Sticky until Reset
	TimerTimedOut
)

func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerActive:
		return "active"
	case TimerPaused:
		return "paused"
	case TimerTimedOut:
		return "timed out"
	}
	return "unknown"
}

// TimeoutCallback runs once when a timer times out. A returned error is
// passed back to whoever drove the timer into timing out.
type TimeoutCallback func() error

// TimeoutTimer fires its callback once duration seconds of active time have
// passed. It has no clock of its own: Tick must be called, usually once a frame.
type TimeoutTimer struct {
	clock    core.Clock
	duration float64
	callback TimeoutCallback

	startTime float64
	pausedAt  float64
	elapsed   float64
	active    bool
	paused    bool
	timedOut  bool
}

func NewTimeoutTimer(clock core.Clock, duration float64, callback TimeoutCallback, startImmediately bool) *TimeoutTimer {
	if clock == nil {
		clock = core.SystemClock
	}
	t := &TimeoutTimer{
		clock:    clock,
		duration: duration,
		callback: callback,
	}
	if startImmediately {
		t.Reset(true)
	}
	return t
}

// Start activates an idle timer. Starting an active timer does nothing.
func (t *TimeoutTimer) Start() error {
	if t.timedOut {
		return fmt.Errorf("%w: timer cannot be started while timed out, use Reset", core.ErrInvalidState)
	}
	if t.paused {
		return fmt.Errorf("%w: timer cannot be started while paused, use Resume", core.ErrInvalidState)
	}

	if !t.active {
		t.active = true
		t.startTime = t.clock.Now()
	}
	return nil
}

// Stop returns the timer to idle. With timeout set the timer times out
// first, callback included, and stays timed out.
func (t *TimeoutTimer) Stop(timeout bool) error {
	if t.timedOut {
		return fmt.Errorf("%w: timer cannot be stopped while timed out, use Reset", core.ErrInvalidState)
	}

	var err error
	if timeout {
		err = t.Timeout()
	}
	t.clear()
	return err
}

func (t *TimeoutTimer) Pause() error {
	if t.timedOut {
		return fmt.Errorf("%w: timer cannot be paused while timed out", core.ErrInvalidState)
	}
	if t.paused {
		return fmt.Errorf("%w: timer cannot be paused while paused, use Resume", core.ErrInvalidState)
	}
	if !t.active {
		return fmt.Errorf("%w: timer cannot be paused before it is started", core.ErrInvalidState)
	}

	t.active = false
	t.paused = true
	t.pausedAt = t.clock.Now()
	return nil
}

// Resume continues a paused timer. The start point moves forward by the
// pause length so paused time is never counted. Resuming a timer that is
// not paused does nothing.
func (t *TimeoutTimer) Resume() error {
	if t.timedOut {
		return fmt.Errorf("%w: timer cannot be resumed while timed out, use Reset", core.ErrInvalidState)
	}

	if t.paused {
		t.startTime += t.clock.Now() - t.pausedAt
		t.pausedAt = 0
		t.paused = false
		t.active = true
	}
	return nil
}

func (t *TimeoutTimer) Reset(startImmediately bool) {
	t.clear()
	t.timedOut = false
	if startImmediately {
		t.active = true
		t.startTime = t.clock.Now()
	}
}

func (t *TimeoutTimer) clear() {
	t.active = false
	t.paused = false
	t.startTime = 0
	t.pausedAt = 0
	t.elapsed = 0
}

// Tick updates the elapsed time of an active timer and times it out once
// the duration is reached. Inactive timers are left alone.
func (t *TimeoutTimer) Tick() error {
	if !t.active {
		return nil
	}

	t.elapsed = t.clock.Now() - t.startTime
	if t.elapsed >= t.duration {
		return t.Timeout()
	}
	return nil
}

// Timeout forces the timer into the timed out state and runs the callback.
// It does nothing if the timer already timed out.
func (t *TimeoutTimer) Timeout() error {
	if t.timedOut {
		return nil
	}

	t.timedOut = true
	t.clear()

	if t.callback != nil {
		return t.callback()
	}
	return nil
}

// Elapsed is the active time measured by the last Tick.
func (t *TimeoutTimer) Elapsed() float64 {
	return t.elapsed
}

// Remaining is the time left as of the last Tick, never below zero.
func (t *TimeoutTimer) Remaining() float64 {
	if t.timedOut {
		return 0
	}
	return max(t.duration-t.elapsed, 0)
}

func (t *TimeoutTimer) Duration() float64 {
	return t.duration
}

func (t *TimeoutTimer) IsActive() bool {
	return t.active
}

func (t *TimeoutTimer) IsPaused() bool {
	return t.paused
}

func (t *TimeoutTimer) IsTimedOut() bool {
	return t.timedOut
}

func (t *TimeoutTimer) State() TimerState {
	switch {
	case t.timedOut:
		return TimerTimedOut
	case t.paused:
		return TimerPaused
	case t.active:
		return TimerActive
	}
	return TimerIdle
}

func (t *TimeoutTimer) String() string {
	return fmt.Sprintf("%.2f/%.2fs (%s)", t.elapsed, t.duration, t.State())
}
