package engine

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/spaghettifunk/toolbox/engine/config"
	"github.com/spaghettifunk/toolbox/engine/core"
	"github.com/spaghettifunk/toolbox/engine/timing"
)

// newTestEngine builds an engine on a manual clock that advances by
// frameSeconds every frame and quits after maxFrames game updates.
func newTestEngine(t *testing.T, g *Game, frameSeconds float64, maxFrames int, opts ...Option) (*Engine, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(0)

	var e *Engine
	frames := 0
	update := g.FnUpdate
	g.FnUpdate = func(delta float64) error {
		if update != nil {
			if err := update(delta); err != nil {
				return err
			}
		}
		frames++
		clock.Advance(frameSeconds)
		if frames >= maxFrames {
			e.Quit()
		}
		return nil
	}

	opts = append([]Option{WithClock(clock), WithSleep(func(float64) {})}, opts...)
	e, err := New(g, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return e, clock
}

func TestEngine_FrameUpdateOrder(t *testing.T) {
	var order []string
	record := func(name string) FrameUpdate {
		return func() error { order = append(order, name); return nil }
	}

	g := &Game{FnUpdate: func(float64) error { order = append(order, "update"); return nil }}
	e, _ := newTestEngine(t, g, 0.1, 1)

	e.AddPreFrameUpdate("late", record("late"), 5)
	e.AddPreFrameUpdateBatch(
		FrameUpdateEntry{Name: "first", Fn: record("first"), Priority: 1},
		FrameUpdateEntry{Name: "second", Fn: record("second"), Priority: 1},
	)
	e.AddPostFrameUpdate("post", record("post"), 0)
	e.AddPreFrameUpdate("removed", record("removed"), 2)
	e.AddPreFrameUpdate("removed", record("removed"), 3)
	e.RemovePreFrameUpdate("removed")

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"first", "second", "late", "update", "post"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestEngine_TicksConfiguredTimers(t *testing.T) {
	cfg := config.Default()
	cfg.Application.FrameRate = 0
	cfg.Timers = []config.TimerPreset{{ID: "spawn", Duration: 1, StartImmediately: true}}
	cfg.Stopwatches = []config.StopwatchPreset{{ID: "runtime", StartImmediately: true}}

	spawned := 0
	g := &Game{
		ApplicationConfig: cfg,
		TimerCallbacks: map[string]timing.TimeoutCallback{
			"spawn": func() error { spawned++; return nil },
		},
	}
	e, _ := newTestEngine(t, g, 0.25, 10)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// timers are ticked before the update advances the clock: ticks at 0..2.25s
	if spawned != 1 {
		t.Errorf("expected spawn to fire once, got %d", spawned)
	}
	elapsed, err := e.Stopwatches().Elapsed("runtime")
	if err != nil {
		t.Fatalf("elapsed: %v", err)
	}
	if elapsed != 2.5 {
		t.Errorf("expected 2.5s runtime, got %v", elapsed)
	}
}

func TestEngine_QuitEvent(t *testing.T) {
	em := core.NewEventManager(4)
	frames := 0
	g := &Game{FnUpdate: func(float64) error {
		frames++
		if frames == 2 {
			em.Push(core.Event{Code: core.EVENT_CODE_APPLICATION_QUIT})
		}
		return nil
	}}
	e, _ := newTestEngine(t, g, 0.1, 100, WithEventManager(em))

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if frames != 3 {
		t.Errorf("expected the loop to stop on the frame after the quit event, got %d frames", frames)
	}
}

func TestEngine_UpdateErrorStopsLoop(t *testing.T) {
	boom := errors.New("boom")
	g := &Game{FnUpdate: func(float64) error { return boom }}
	e, _ := newTestEngine(t, g, 0.1, 100)

	if err := e.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected update error, got %v", err)
	}
}

func TestEngine_TimerCallbackErrorStopsLoop(t *testing.T) {
	boom := errors.New("boom")
	g := &Game{}
	e, _ := newTestEngine(t, g, 0.5, 100)
	e.Timers().Create("fail", 1, func() error { return boom }, true)

	if err := e.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected timer callback error, got %v", err)
	}
}

func TestEngine_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	g := &Game{FnUpdate: func(float64) error {
		frames++
		cancel()
		return nil
	}}
	e, _ := newTestEngine(t, g, 0.1, 100)

	if err := e.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if frames != 1 {
		t.Errorf("expected 1 frame, got %d", frames)
	}
}

func TestEngine_FrameLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Application.FrameRate = 10

	var slept []float64
	g := &Game{ApplicationConfig: cfg}
	e, _ := newTestEngine(t, g, 0.025, 2, WithSleep(func(s float64) { slept = append(slept, s) }))

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(slept) != 2 {
		t.Fatalf("expected to sleep on both frames, got %v", slept)
	}
	if math.Abs(slept[0]-0.075) > 1e-9 {
		t.Errorf("expected 0.075s of sleep, got %v", slept[0])
	}
}

func TestEngine_ConfigUpdatesAreAppliedFirstWriterWins(t *testing.T) {
	updates := make(chan *config.Config, 1)

	cfg := config.Default()
	cfg.Timers = []config.TimerPreset{{ID: "a", Duration: 1}}
	g := &Game{ApplicationConfig: cfg}
	e, _ := newTestEngine(t, g, 0.1, 1, WithConfigUpdates(updates))

	reloaded := config.Default()
	reloaded.Timers = []config.TimerPreset{{ID: "a", Duration: 9}, {ID: "b", Duration: 2}}
	updates <- reloaded

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	a, err := e.Timers().Get("a")
	if err != nil {
		t.Fatalf("get a: %v", err)
	}
	if a.Duration() != 1 {
		t.Errorf("existing timer should keep its duration, got %v", a.Duration())
	}
	if !e.Timers().Exists("b") {
		t.Error("expected the reloaded config to add b")
	}
	if e.Config() != reloaded {
		t.Error("expected the engine to hold the reloaded config")
	}
}

func TestEngine_Lifecycle(t *testing.T) {
	shutdown := false
	g := &Game{FnShutdown: func() error { shutdown = true; return nil }}
	e, _ := newTestEngine(t, g, 0.1, 1)

	if err := e.Initialize(); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on second initialize, got %v", err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !shutdown || e.Stage() != EngineStageShutdown {
		t.Errorf("expected game shutdown and final stage, got %v %v", shutdown, e.Stage())
	}
}
