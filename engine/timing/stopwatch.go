package timing

import (
	"fmt"

	"github.com/spaghettifunk/toolbox/engine/core"
)

type StopwatchState uint8

const (
	// Stopwatch has never been started, or was stopped/reset
	StopwatchIdle StopwatchState = iota
	// Stopwatch is counting
	StopwatchRunning
	// Stopwatch is on but frozen at the pause point
	StopwatchPaused
)

func (s StopwatchState) String() string {
	switch s {
	case StopwatchIdle:
		return "idle"
	case StopwatchRunning:
		return "running"
	case StopwatchPaused:
		return "paused"
	}
	return "unknown"
}

// Stopwatch tracks elapsed active time. Intervals spent paused are not counted.
type Stopwatch struct {
	clock core.Clock

	startTime  float64
	pausedAt   float64
	pauseTotal float64
	running    bool
	paused     bool
	laps       []float64
}

func NewStopwatch(clock core.Clock, startImmediately bool) *Stopwatch {
	if clock == nil {
		clock = core.SystemClock
	}
	sw := &Stopwatch{clock: clock}
	if startImmediately {
		sw.Reset(true)
	}
	return sw
}

// Start runs an idle stopwatch. initialOffset is counted as already elapsed.
func (sw *Stopwatch) Start(initialOffset float64) error {
	if sw.running && !sw.paused {
		return fmt.Errorf("%w: stopwatch cannot be started while running, use Reset", core.ErrInvalidState)
	}
	if sw.paused {
		return fmt.Errorf("%w: stopwatch cannot be started while paused, use Resume", core.ErrInvalidState)
	}

	sw.startTime = sw.clock.Now() - initialOffset
	sw.pauseTotal = 0
	sw.pausedAt = 0
	sw.running = true
	sw.paused = false
	sw.laps = nil
	return nil
}

// Stop returns the stopwatch to idle. When returnElapsed is set the elapsed
// time captured just before clearing is returned, otherwise 0.
func (sw *Stopwatch) Stop(returnElapsed bool) (float64, error) {
	if !sw.running {
		return 0, fmt.Errorf("%w: stopwatch cannot be stopped while stopped, use Reset", core.ErrInvalidState)
	}

	var elapsed float64
	if returnElapsed {
		elapsed = sw.Elapsed()
	}
	sw.clear()
	return elapsed, nil
}

// Pause freezes a running stopwatch. Pausing an idle stopwatch does nothing
// and reports 0.
func (sw *Stopwatch) Pause(returnElapsed bool) (float64, error) {
	if sw.paused {
		return 0, fmt.Errorf("%w: stopwatch cannot be paused while already paused", core.ErrInvalidState)
	}

	if sw.running {
		sw.pausedAt = sw.clock.Now()
		sw.paused = true
	}

	if !returnElapsed {
		return 0, nil
	}
	return sw.Elapsed(), nil
}

func (sw *Stopwatch) Resume() error {
	if !sw.paused {
		return fmt.Errorf("%w: stopwatch cannot be resumed while not paused", core.ErrInvalidState)
	}

	sw.pauseTotal += sw.clock.Now() - sw.pausedAt
	sw.pausedAt = 0
	sw.paused = false
	return nil
}

// Reset clears the stopwatch from any state, optionally running it again right away.
func (sw *Stopwatch) Reset(startImmediately bool) {
	sw.clear()
	if startImmediately {
		sw.startTime = sw.clock.Now()
		sw.running = true
	}
}

func (sw *Stopwatch) clear() {
	sw.startTime = 0
	sw.pausedAt = 0
	sw.pauseTotal = 0
	sw.running = false
	sw.paused = false
	sw.laps = nil
}

// Lap records the current elapsed time and returns it.
func (sw *Stopwatch) Lap() float64 {
	lap := sw.Elapsed()
	sw.laps = append(sw.laps, lap)
	return lap
}

func (sw *Stopwatch) Laps() []float64 {
	laps := make([]float64, len(sw.laps))
	copy(laps, sw.laps)
	return laps
}

// LapDurations returns the time between consecutive laps, the first one
// measured from zero.
func (sw *Stopwatch) LapDurations() []float64 {
	durations := make([]float64, 0, len(sw.laps))
	last := 0.0
	for _, lap := range sw.laps {
		durations = append(durations, lap-last)
		last = lap
	}
	return durations
}

func (sw *Stopwatch) Elapsed() float64 {
	switch {
	case sw.paused:
		return sw.pausedAt - sw.startTime - sw.pauseTotal
	case sw.running:
		return sw.clock.Now() - sw.startTime - sw.pauseTotal
	}
	return 0.0
}

// IsRunning stays true while paused: the stopwatch is on, just frozen.
func (sw *Stopwatch) IsRunning() bool {
	return sw.running
}

func (sw *Stopwatch) IsPaused() bool {
	return sw.paused
}

func (sw *Stopwatch) State() StopwatchState {
	switch {
	case sw.paused:
		return StopwatchPaused
	case sw.running:
		return StopwatchRunning
	}
	return StopwatchIdle
}

func (sw *Stopwatch) String() string {
	return fmt.Sprintf("%.3fs elapsed (%s)", sw.Elapsed(), sw.State())
}
