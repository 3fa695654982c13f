package config

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/toolbox/engine/core"
)

// Watcher reloads a config file whenever it changes on disk. Reloaded
// configs are handed over on Updates so the frame loop can apply them on
// its own goroutine.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	updates  chan *Config
	done     chan struct{}
	isClosed bool
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		updates:  make(chan *Config, 1),
		done:     make(chan struct{}),
	}
	go w.start()
	return w, nil
}

// Updates delivers the latest successfully reloaded config.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

func (w *Watcher) Close() error {
	if w.isClosed {
		return errors.New("config watcher already closed")
	}
	w.isClosed = true
	close(w.done)
	return nil
}

func (w *Watcher) start() {
	for {
		select {

		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				// a half written file is common, the next write event retries
				core.LogWarn("config reload skipped: %s", err)
				continue
			}
			core.LogInfo("config %s reloaded", w.path)
			w.publish(cfg)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

// publish keeps only the newest config if the consumer has not caught up.
func (w *Watcher) publish(cfg *Config) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
