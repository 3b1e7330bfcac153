package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/dshills/toolbox/internal/watcher"
)

// ReloadFunc is told about every reload the watch loop performs.
type ReloadFunc func(change watcher.Change, err error)

// Watch reloads macros whenever the primary file, the environment
// descriptor or a shelf file changes. It blocks until ctx is done.
func (a *Application) Watch(ctx context.Context, onReload ReloadFunc) error {
	w, err := watcher.New(a.cfg.Watch.Debounce)
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	defer w.Close()

	a.watchTargets(w)

	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-w.Changes():
			if !ok {
				return nil
			}
			err := a.Load()
			if err != nil {
				a.logger.Warn("reload failed", "error", err)
			} else {
				a.logger.Info("reloaded macros",
					"changed", len(change.Paths),
					"toolbox", a.manager.MacroCount(true),
					"shelf", a.manager.MacroCount(false))
			}
			if onReload != nil {
				onReload(change, err)
			}
			// A reload can introduce new shelf directories.
			a.watchTargets(w)

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchTargets adds every file and directory a reload depends on. Targets
// whose directory does not exist yet are skipped.
func (a *Application) watchTargets(w *watcher.Watcher) {
	files := []string{a.manager.SaveFilePath()}
	if env := a.cfg.EditorEnvPath(); env != "" {
		files = append(files, env)
	}
	for _, f := range files {
		a.watchErr(f, w.WatchFile(f))
	}
	for _, tb := range a.manager.Toolbars() {
		if tb.Source == "" {
			continue
		}
		dir := filepath.Dir(tb.Source)
		a.watchErr(dir, w.WatchDir(dir))
	}
}

func (a *Application) watchErr(path string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, watcher.ErrPathNotExist):
		a.logger.Debug("not watching missing path", "path", path)
	default:
		a.logger.Warn("cannot watch path", "path", path, "error", err)
	}
}
