package watcher

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/input/keyboard"
	"github.com/dshills/keybind/internal/logging"
)

// Reloader reloads an engine whenever one of its configuration files
// changes. Files are re-read together and merged in the order given.
type Reloader struct {
	engine *keyboard.Engine
	loader *config.Loader
	paths  []string
	w      *Watcher
	log    *logrus.Entry

	// mu serializes reloads.
	mu sync.Mutex
}

// NewReloader creates a reloader for paths. The watcher is owned by the
// reloader and stopped by Stop.
func NewReloader(engine *keyboard.Engine, loader *config.Loader, w *Watcher, paths []string, logger *logrus.Logger) *Reloader {
	if loader == nil {
		loader = config.NewLoader(config.WithLogger(logger))
	}
	return &Reloader{
		engine: engine,
		loader: loader,
		paths:  append([]string(nil), paths...),
		w:      w,
		log:    logging.Component(logger, "reload"),
	}
}

// Source returns the source name used for snapshots loaded by r.
func (r *Reloader) Source() string {
	return strings.Join(r.paths, ",")
}

// Reload reads every file, builds the inputs and swaps the engine's
// snapshot. On any error the engine keeps its current snapshot.
func (r *Reloader) Reload() (*keyboard.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.loader.LoadFiles(r.paths...)
	if err != nil {
		return nil, r.fail(err)
	}
	in, err := doc.Inputs()
	if err != nil {
		return nil, r.fail(err)
	}
	return r.engine.Reload(in, r.Source())
}

func (r *Reloader) fail(err error) error {
	r.log.WithError(err).Warn("config reload failed")
	r.engine.Fail(r.Source(), err)
	return err
}

// Start watches the configuration files and reloads on change until ctx
// is done or Stop is called.
func (r *Reloader) Start(ctx context.Context) error {
	for _, p := range r.paths {
		if err := r.w.Watch(p); err != nil {
			return err
		}
	}

	r.w.OnChange(func(ev Event) {
		fields := logrus.Fields{"path": ev.Path, "op": ev.Op}
		if ev.Op == OpRemove || ev.Op == OpRename {
			// Keep the last good snapshot until the file comes back.
			r.log.WithFields(fields).Warn("config file went away")
			return
		}
		r.log.WithFields(fields).Info("config file changed")
		_, _ = r.Reload()
	})

	return r.w.Start(ctx)
}

// Stop stops watching.
func (r *Reloader) Stop() error {
	return r.w.Stop()
}
