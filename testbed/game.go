package testbed

import (
	"math/rand"

	"github.com/spaghettifunk/toolbox/engine"
	"github.com/spaghettifunk/toolbox/engine/config"
	"github.com/spaghettifunk/toolbox/engine/core"
	"github.com/spaghettifunk/toolbox/engine/timing"
)

const (
	DebugTimerID       = "debug_out"
	SpawnTimerID       = "spawn"
	RuntimeStopwatchID = "window_runtime"
	UpdateStopwatchID  = "update_time"
)

type square struct {
	width, height int
	x, y          int
}

type TestGame struct {
	*engine.Game

	engine     *engine.Engine
	squares    []square
	updateTime float64
}

// DefaultConfig mirrors the presets the testbed expects when no config file is given.
func DefaultConfig() *config.Config {
	cfg := config.Default()
	cfg.Application.Name = "Toolbox Testbed"
	cfg.Log.Level = "debug"
	cfg.Timers = []config.TimerPreset{
		{ID: DebugTimerID, Duration: 5.0, StartImmediately: true},
		{ID: SpawnTimerID, Duration: 1.0, StartImmediately: true},
	}
	cfg.Stopwatches = []config.StopwatchPreset{
		{ID: RuntimeStopwatchID, StartImmediately: true},
		{ID: UpdateStopwatchID, StartImmediately: true},
	}
	return cfg
}

func NewTestGame(cfg *config.Config) *TestGame {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: cfg,
		},
	}

	tg.TimerCallbacks = map[string]timing.TimeoutCallback{
		DebugTimerID: tg.debug,
		SpawnTimerID: tg.spawnSquare,
	}
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnShutdown = tg.Shutdown
	return tg
}

func (g *TestGame) Initialize(e *engine.Engine) error {
	core.LogDebug("TestGame Initialize fn....")
	g.engine = e

	// presets from a user config may leave these out
	e.Timers().Create(DebugTimerID, 5.0, g.debug, true)
	e.Timers().Create(SpawnTimerID, 1.0, g.spawnSquare, true)
	e.Stopwatches().Create(RuntimeStopwatchID, true)
	e.Stopwatches().Create(UpdateStopwatchID, true)

	e.AddPreFrameUpdate("testbed.keys", g.handleKeys, 1)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	sw, err := g.engine.Stopwatches().Get(UpdateStopwatchID)
	if err != nil {
		return err
	}
	sw.Reset(true)

	// Nothing is drawn: the squares only exist to give the frame some work.
	area := 0
	for _, s := range g.squares {
		area += s.width * s.height
	}
	_ = area

	g.updateTime, err = sw.Stop(true)
	return err
}

func (g *TestGame) Shutdown() error {
	runtime, err := g.engine.Stopwatches().Elapsed(RuntimeStopwatchID)
	if err != nil {
		return err
	}
	core.LogInfo("testbed ran for %.2fs with %d squares", runtime, len(g.squares))
	return nil
}

func (g *TestGame) handleKeys() error {
	input := g.engine.Input()
	if input.KeyPressed(core.KEY_ESCAPE) {
		g.engine.Events().Push(core.Event{Code: core.EVENT_CODE_APPLICATION_QUIT})
	}
	if input.KeyPressed(core.KEY_P) {
		g.togglePause()
	}
	return nil
}

func (g *TestGame) togglePause() {
	sw, err := g.engine.Stopwatches().Get(RuntimeStopwatchID)
	if err != nil {
		core.LogError(err.Error())
		return
	}
	if sw.IsPaused() {
		_ = sw.Resume()
		core.LogInfo("runtime stopwatch resumed")
		return
	}
	elapsed, _ := sw.Pause(true)
	core.LogInfo("runtime stopwatch paused at %.2fs", elapsed)
}

func (g *TestGame) spawnSquare() error {
	cfg := g.ApplicationConfig.Application
	g.squares = append(g.squares, square{
		width:  10 + rand.Intn(41),
		height: 10 + rand.Intn(41),
		x:      rand.Intn(int(cfg.Width) + 1),
		y:      rand.Intn(int(cfg.Height) + 1),
	})

	t, err := g.engine.Timers().Get(SpawnTimerID)
	if err != nil {
		return err
	}
	t.Reset(true)
	return nil
}

func (g *TestGame) debug() error {
	runtime, err := g.engine.Stopwatches().Elapsed(RuntimeStopwatchID)
	if err != nil {
		return err
	}
	fps, frameMS := g.engine.Metrics().Frame()
	core.LogInfo("Runtime: %.2fs, update time: %.10fs, squares: %d, fps: %.0f (%.2fms)",
		runtime, g.updateTime, len(g.squares), fps, frameMS)

	t, err := g.engine.Timers().Get(DebugTimerID)
	if err != nil {
		return err
	}
	t.Reset(true)
	return nil
}

func (g *TestGame) Squares() int {
	return len(g.squares)
}
