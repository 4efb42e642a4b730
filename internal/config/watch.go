package config

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the config file when it changes on disk and swaps the new
// value into Store. Files that fail to load or validate are ignored and the
// previous config stays active.
type Watcher struct {
	Path     string
	Store    *atomic.Value // stores Config
	Log      *zap.Logger
	Debounce time.Duration

	// OnReload runs after a new config has been stored.
	OnReload func(Config)
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// Watch the directory: editors often replace the file by rename.
	dir := filepath.Dir(w.Path)
	if err := fw.Add(dir); err != nil {
		return err
	}
	log := w.logger()
	log.Info("watching config", zap.String("path", w.Path))

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	target := filepath.Clean(w.Path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	log := w.logger()

	cfg, err := Load(w.Path)
	if err != nil {
		log.Warn("config reload failed; keeping previous config", zap.String("path", w.Path), zap.Error(err))
		return
	}
	normalized, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		log.Warn("config reload rejected; keeping previous config", zap.Strings("errors", vr.Errors))
		return
	}
	for _, warn := range vr.Warnings {
		log.Warn("config warning", zap.String("warning", warn))
	}

	w.Store.Store(normalized)
	log.Info("config reloaded", zap.String("path", w.Path))
	if w.OnReload != nil {
		w.OnReload(normalized)
	}
}

func (w *Watcher) logger() *zap.Logger {
	if w.Log == nil {
		return zap.NewNop()
	}
	return w.Log
}
