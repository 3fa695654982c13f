package engine

import (
	"github.com/spaghettifunk/toolbox/engine/config"
	"github.com/spaghettifunk/toolbox/engine/core"
)

// ApplyConfig applies log level, frame limit and presets. Timers and
// stopwatches already present are kept as they are, so a reloaded config
// only adds the entries it newly declares.
func (e *Engine) ApplyConfig(cfg *config.Config) {
	e.config = cfg
	core.SetLogLevel(cfg.LogLevel())
	e.targetFrameSeconds = cfg.FrameSeconds()

	for _, t := range cfg.Timers {
		e.timers.Create(t.ID, t.Duration, e.gameInstance.TimerCallbacks[t.ID], t.StartImmediately)
	}
	for _, s := range cfg.Stopwatches {
		e.stopwatches.Create(s.ID, s.StartImmediately)
	}
}

// drainConfigUpdates applies a config reloaded since the last frame, if any.
func (e *Engine) drainConfigUpdates() error {
	if e.configUpdates == nil {
		return nil
	}
	select {
	case cfg, ok := <-e.configUpdates:
		if !ok {
			e.configUpdates = nil
			return nil
		}
		e.ApplyConfig(cfg)
	default:
	}
	return nil
}
