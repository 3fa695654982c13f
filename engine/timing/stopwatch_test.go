package timing

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spaghettifunk/toolbox/engine/core"
)

func TestStopwatch_StartPauseResumeStop(t *testing.T) {
	clock := core.NewManualClock(100)
	sw := NewStopwatch(clock, false)

	if err := sw.Start(0); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(2)
	if _, err := sw.Pause(false); err != nil {
		t.Fatalf("pause: %v", err)
	}
	clock.Advance(3)
	if err := sw.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	clock.Advance(1.5)

	elapsed, err := sw.Stop(true)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	// 6.5s of wall time, 3s of it paused
	if elapsed != 3.5 {
		t.Errorf("expected 3.5s elapsed, got %v", elapsed)
	}
	if sw.State() != StopwatchIdle {
		t.Errorf("expected idle after stop, got %s", sw.State())
	}
	if sw.Elapsed() != 0 {
		t.Errorf("expected 0 elapsed after stop, got %v", sw.Elapsed())
	}
}

func TestStopwatch_InitialOffset(t *testing.T) {
	clock := core.NewManualClock(10)
	sw := NewStopwatch(clock, false)

	_ = sw.Start(4)
	clock.Advance(1)

	if got := sw.Elapsed(); got != 5 {
		t.Errorf("expected 5s elapsed, got %v", got)
	}
}

func TestStopwatch_StopWithoutElapsed(t *testing.T) {
	clock := core.NewManualClock(0)
	sw := NewStopwatch(clock, true)
	clock.Advance(7)

	elapsed, err := sw.Stop(false)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if elapsed != 0 {
		t.Errorf("expected no elapsed value, got %v", elapsed)
	}
}

func TestStopwatch_FrozenWhilePaused(t *testing.T) {
	clock := core.NewManualClock(0)
	sw := NewStopwatch(clock, true)
	clock.Advance(4)

	paused, err := sw.Pause(true)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	first := sw.Elapsed()
	clock.Advance(10)
	second := sw.Elapsed()

	if paused != 4 || first != 4 || second != 4 {
		t.Errorf("expected elapsed frozen at 4, got %v, %v, %v", paused, first, second)
	}
	if !sw.IsRunning() || !sw.IsPaused() {
		t.Error("a paused stopwatch should report both running and paused")
	}
}

func TestStopwatch_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		prep func(sw *Stopwatch)
		op   func(sw *Stopwatch) error
	}{
		{
			name: "start while running",
			prep: func(sw *Stopwatch) { _ = sw.Start(0) },
			op:   func(sw *Stopwatch) error { return sw.Start(0) },
		},
		{
			name: "start while paused",
			prep: func(sw *Stopwatch) { _ = sw.Start(0); _, _ = sw.Pause(false) },
			op:   func(sw *Stopwatch) error { return sw.Start(0) },
		},
		{
			name: "stop while idle",
			prep: func(sw *Stopwatch) {},
			op:   func(sw *Stopwatch) error { _, err := sw.Stop(true); return err },
		},
		{
			name: "pause while paused",
			prep: func(sw *Stopwatch) { _ = sw.Start(0); _, _ = sw.Pause(false) },
			op:   func(sw *Stopwatch) error { _, err := sw.Pause(true); return err },
		},
		{
			name: "resume while running",
			prep: func(sw *Stopwatch) { _ = sw.Start(0) },
			op:   func(sw *Stopwatch) error { return sw.Resume() },
		},
		{
			name: "resume while idle",
			prep: func(sw *Stopwatch) {},
			op:   func(sw *Stopwatch) error { return sw.Resume() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw := NewStopwatch(core.NewManualClock(0), false)
			tt.prep(sw)
			if err := tt.op(sw); !errors.Is(err, core.ErrInvalidState) {
				t.Errorf("expected ErrInvalidState, got %v", err)
			}
		})
	}
}

func TestStopwatch_PauseWhileIdleIsNoop(t *testing.T) {
	sw := NewStopwatch(core.NewManualClock(3), false)

	elapsed, err := sw.Pause(true)
	if err != nil {
		t.Fatalf("expected no error pausing an idle stopwatch, got %v", err)
	}
	if elapsed != 0 {
		t.Errorf("expected 0 elapsed, got %v", elapsed)
	}
	if sw.State() != StopwatchIdle {
		t.Errorf("expected idle, got %s", sw.State())
	}
}

func TestStopwatch_ResetMatchesFresh(t *testing.T) {
	preps := map[string]func(sw *Stopwatch, clock *core.ManualClock){
		"idle":    func(sw *Stopwatch, clock *core.ManualClock) {},
		"running": func(sw *Stopwatch, clock *core.ManualClock) { _ = sw.Start(1); clock.Advance(2); sw.Lap() },
		"paused": func(sw *Stopwatch, clock *core.ManualClock) {
			_ = sw.Start(0)
			clock.Advance(2)
			_, _ = sw.Pause(false)
			clock.Advance(1)
		},
	}

	for name, prep := range preps {
		t.Run(name, func(t *testing.T) {
			clock := core.NewManualClock(50)
			sw := NewStopwatch(clock, false)
			prep(sw, clock)
			sw.Reset(false)

			fresh := NewStopwatch(clock, false)
			if !reflect.DeepEqual(sw, fresh) {
				t.Errorf("reset stopwatch differs from a fresh one: %+v vs %+v", sw, fresh)
			}
		})
	}
}

func TestStopwatch_ResetStartImmediately(t *testing.T) {
	clock := core.NewManualClock(0)
	sw := NewStopwatch(clock, false)
	_ = sw.Start(0)
	clock.Advance(5)

	sw.Reset(true)
	clock.Advance(1)

	if sw.State() != StopwatchRunning {
		t.Errorf("expected running, got %s", sw.State())
	}
	if got := sw.Elapsed(); got != 1 {
		t.Errorf("expected 1s elapsed since reset, got %v", got)
	}
}

func TestStopwatch_Laps(t *testing.T) {
	clock := core.NewManualClock(0)
	sw := NewStopwatch(clock, true)

	for _, at := range []float64{2, 5, 9} {
		clock.Set(at)
		sw.Lap()
	}

	if got := sw.Laps(); !reflect.DeepEqual(got, []float64{2, 5, 9}) {
		t.Errorf("unexpected laps %v", got)
	}
	if got := sw.LapDurations(); !reflect.DeepEqual(got, []float64{2, 3, 4}) {
		t.Errorf("unexpected lap durations %v", got)
	}

	laps := sw.Laps()
	laps[0] = 42
	if sw.Laps()[0] != 2 {
		t.Error("Laps should return a copy")
	}

	_, _ = sw.Stop(false)
	if len(sw.Laps()) != 0 {
		t.Error("stop should clear laps")
	}
}

func TestStopwatch_LapWhileIdle(t *testing.T) {
	sw := NewStopwatch(core.NewManualClock(8), false)

	if got := sw.Lap(); got != 0 {
		t.Errorf("expected 0 lap on idle stopwatch, got %v", got)
	}
	if len(sw.Laps()) != 1 {
		t.Errorf("expected the lap to be recorded, got %v", sw.Laps())
	}
}
