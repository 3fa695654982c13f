/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/toolbox/engine"
	"github.com/spaghettifunk/toolbox/engine/config"
	"github.com/spaghettifunk/toolbox/engine/core"
	"github.com/spaghettifunk/toolbox/engine/platform"
	"github.com/spaghettifunk/toolbox/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file, reloaded on change")
	flag.Parse()

	if err := run(*configPath); err != nil {
		core.LogError(err.Error())
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := testbed.DefaultConfig()
	var opts []engine.Option
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		watcher, err := config.NewWatcher(configPath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		opts = append(opts, engine.WithConfigUpdates(watcher.Updates()))
	}

	events := core.NewEventManager(core.DefaultEventQueueSize)
	p := platform.New(events)
	if err := p.Startup(cfg.Application.Name, cfg.Application.Width, cfg.Application.Height); err != nil {
		return err
	}
	defer p.Shutdown()

	opts = append(opts, engine.WithClock(p), engine.WithEventManager(events))
	tb := testbed.NewTestGame(cfg)
	e, err := engine.New(tb.Game, opts...)
	if err != nil {
		return err
	}
	e.AddPreFrameUpdate("platform.pump", p.PumpMessages, -200)

	if err := e.Initialize(); err != nil {
		return err
	}

	// cancel the loop on sigterm and other system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	return runErr
}
