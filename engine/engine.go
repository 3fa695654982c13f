package engine

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/toolbox/engine/config"
	"github.com/spaghettifunk/toolbox/engine/core"
	"github.com/spaghettifunk/toolbox/engine/timing"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine shut down
	EngineStageShutdown
)

// Names of the frame updates the engine registers on its own.
const (
	EventsUpdateName = "engine.events"
	ConfigUpdateName = "engine.config"
	TimersUpdateName = "engine.timers"
)

// FrameUpdate is a callback run once per frame, before or after the game update.
type FrameUpdate func() error

// FrameUpdateEntry describes a frame update. Lower priorities run first.
type FrameUpdateEntry struct {
	Name     string
	Fn       FrameUpdate
	Priority int
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *config.Config

	clock       core.Clock
	frameClock  *core.FrameClock
	metrics     *core.FrameMetrics
	events      *core.EventManager
	input       *core.InputState
	timers      *timing.TimerCollection
	stopwatches *timing.StopwatchCollection

	preFrameUpdates  []FrameUpdateEntry
	postFrameUpdates []FrameUpdateEntry

	isRunning          bool
	lastTime           float64
	targetFrameSeconds float64
	sleep              func(seconds float64)
	configUpdates      <-chan *config.Config
}

type Option func(*Engine)

// WithClock replaces the system clock for every timing entity of the engine.
func WithClock(c core.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithSleep replaces the function used to give spare frame time back to the OS.
func WithSleep(sleep func(seconds float64)) Option {
	return func(e *Engine) {
		e.sleep = sleep
	}
}

// WithConfigUpdates makes the engine apply configs received on ch at the start of a frame.
func WithConfigUpdates(ch <-chan *config.Config) Option {
	return func(e *Engine) {
		e.configUpdates = ch
	}
}

// WithEventManager shares an event manager, usually the one the platform pushes to.
func WithEventManager(em *core.EventManager) Option {
	return func(e *Engine) {
		e.events = em
	}
}

func New(g *Game, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("a game instance is required")
	}
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = config.Default()
	}

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.SystemClock,
		metrics:      core.NewFrameMetrics(),
		input:        core.NewInputState(),
		sleep: func(seconds float64) {
			time.Sleep(time.Duration(seconds * float64(time.Second)))
		},
	}
	for _, o := range opts {
		o(e)
	}
	if e.events == nil {
		e.events = core.NewEventManager(core.DefaultEventQueueSize)
	}

	e.frameClock = core.NewFrameClock(e.clock)
	e.timers = timing.NewTimerCollection(e.clock)
	e.stopwatches = timing.NewStopwatchCollection(e.clock)

	e.AddPreFrameUpdateBatch(
		FrameUpdateEntry{Name: EventsUpdateName, Fn: e.pollEvents, Priority: -100},
		FrameUpdateEntry{Name: ConfigUpdateName, Fn: e.drainConfigUpdates, Priority: -90},
		FrameUpdateEntry{Name: TimersUpdateName, Fn: e.timers.TickAll, Priority: 0},
	)
	return e, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("%w: engine already initialized", core.ErrInvalidState)
	}
	e.currentStage = EngineStageInitializing

	e.ApplyConfig(e.gameInstance.ApplicationConfig)

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized: %s", e.config.Application.Name)
	return nil
}

// Run drives frames until Quit is called, ctx is cancelled or a frame fails.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: engine must be initialized before running", core.ErrInvalidState)
	}
	e.currentStage = EngineStageRunning

	e.frameClock.Start()
	e.frameClock.Update()
	e.lastTime = e.frameClock.Elapsed()
	e.isRunning = true

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("context done, stopping the loop.")
			e.isRunning = false
			continue
		default:
		}

		if err := e.frame(); err != nil {
			e.isRunning = false
			return err
		}
	}
	return nil
}

func (e *Engine) frame() error {
	frameStartTime := e.clock.Now()

	// Update clock and get delta time.
	e.frameClock.Update()
	currentTime := e.frameClock.Elapsed()
	delta := currentTime - e.lastTime

	for _, u := range e.preFrameUpdates {
		if err := u.Fn(); err != nil {
			return fmt.Errorf("pre frame update %q: %w", u.Name, err)
		}
	}

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down.")
			return err
		}
	}

	for _, u := range e.postFrameUpdates {
		if err := u.Fn(); err != nil {
			return fmt.Errorf("post frame update %q: %w", u.Name, err)
		}
	}

	// Figure out how long the frame took and, if below the target, give
	// the rest back to the OS.
	frameElapsedTime := e.clock.Now() - frameStartTime
	if remaining := e.targetFrameSeconds - frameElapsedTime; e.targetFrameSeconds > 0 && remaining > 0 {
		e.sleep(remaining)
	}

	e.metrics.Update(delta)
	e.lastTime = currentTime
	return nil
}

// Quit stops the loop once the current frame is over.
func (e *Engine) Quit() {
	e.isRunning = false
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	e.frameClock.Stop()
	e.currentStage = EngineStageShutdown
	return nil
}

func (e *Engine) pollEvents() error {
	e.events.Poll()
	e.input.Update(e.events.Events())
	if e.events.IsEvent(core.EVENT_CODE_APPLICATION_QUIT) {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.Quit()
	}
	return nil
}

// AddPreFrameUpdate registers fn to run before the game update. Updates
// with equal priority run in the order they were added.
func (e *Engine) AddPreFrameUpdate(name string, fn FrameUpdate, priority int) {
	e.preFrameUpdates = addFrameUpdate(e.preFrameUpdates, FrameUpdateEntry{Name: name, Fn: fn, Priority: priority})
}

func (e *Engine) AddPreFrameUpdateBatch(updates ...FrameUpdateEntry) {
	for _, u := range updates {
		e.preFrameUpdates = addFrameUpdate(e.preFrameUpdates, u)
	}
}

// AddPostFrameUpdate registers fn to run after the game update.
func (e *Engine) AddPostFrameUpdate(name string, fn FrameUpdate, priority int) {
	e.postFrameUpdates = addFrameUpdate(e.postFrameUpdates, FrameUpdateEntry{Name: name, Fn: fn, Priority: priority})
}

func (e *Engine) AddPostFrameUpdateBatch(updates ...FrameUpdateEntry) {
	for _, u := range updates {
		e.postFrameUpdates = addFrameUpdate(e.postFrameUpdates, u)
	}
}

// RemovePreFrameUpdate removes every pre frame update registered under name.
func (e *Engine) RemovePreFrameUpdate(name string) {
	e.preFrameUpdates = removeFrameUpdate(e.preFrameUpdates, name)
}

// RemovePostFrameUpdate removes every post frame update registered under name.
func (e *Engine) RemovePostFrameUpdate(name string) {
	e.postFrameUpdates = removeFrameUpdate(e.postFrameUpdates, name)
}

func addFrameUpdate(updates []FrameUpdateEntry, u FrameUpdateEntry) []FrameUpdateEntry {
	updates = append(updates, u)
	slices.SortStableFunc(updates, func(a, b FrameUpdateEntry) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return updates
}

func removeFrameUpdate(updates []FrameUpdateEntry, name string) []FrameUpdateEntry {
	return slices.DeleteFunc(updates, func(u FrameUpdateEntry) bool {
		return u.Name == name
	})
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Config() *config.Config {
	return e.config
}

func (e *Engine) Clock() core.Clock {
	return e.clock
}

func (e *Engine) Timers() *timing.TimerCollection {
	return e.timers
}

func (e *Engine) Stopwatches() *timing.StopwatchCollection {
	return e.stopwatches
}

func (e *Engine) Events() *core.EventManager {
	return e.events
}

func (e *Engine) Input() *core.InputState {
	return e.input
}

func (e *Engine) Metrics() *core.FrameMetrics {
	return e.metrics
}
