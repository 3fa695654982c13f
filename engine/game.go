package engine

import (
	"github.com/spaghettifunk/toolbox/engine/config"
	"github.com/spaghettifunk/toolbox/engine/timing"
)

type Game struct {
	ApplicationConfig *config.Config
	State             interface{}
	// Callbacks bound to the timers declared in the config, by timer id.
	TimerCallbacks map[string]timing.TimeoutCallback
	FnInitialize   Initialize
	FnUpdate       Update
	FnShutdown     Shutdown
}

type Initialize func(e *Engine) error
type Update func(deltaTime float64) error
type Shutdown func() error
