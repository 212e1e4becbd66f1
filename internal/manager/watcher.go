package manager

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"craftmon/internal/config"
	"craftmon/internal/logging"
)

// ConfigWatcher reloads the config file when it changes on disk. Editors
// save in bursts (write, chmod, rename), so the reload fires only after the
// file has been quiet for the debounce period; the last write of a burst is
// always the one that gets read.
type ConfigWatcher struct {
	path    string
	loop    *Loop
	m       *Manager
	watcher *fsnotify.Watcher

	mu        sync.Mutex
	pending   bool
	lastEvent time.Time
	debounce  time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewConfigWatcher watches the config file at path and applies changes
// through the loop.
func NewConfigWatcher(path string, loop *Loop, m *Manager) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ConfigWatcher{
		path:     path,
		loop:     loop,
		m:        m,
		watcher:  w,
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; events are handled on an internal
// goroutine until Stop or ctx cancellation.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	// Watch the directory, not the file: most editors replace the file on
	// save, which would drop a direct file watch.
	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return err
	}
	logging.Get(logging.CategoryConfig).Info("watching %s for changes", cw.path)
	go cw.run(ctx)
	return nil
}

// Stop stops watching and waits for the goroutine to exit.
func (cw *ConfigWatcher) Stop() {
	close(cw.stopCh)
	<-cw.doneCh
	if err := cw.watcher.Close(); err != nil {
		logging.Get(logging.CategoryConfig).Error("close watcher: %v", err)
	}
}

func (cw *ConfigWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	// Poll for the quiet period so a burst settles before the reload.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(cw.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cw.markDirty()

		case <-ticker.C:
			if cw.settleElapsed() {
				logging.Get(logging.CategoryConfig).Info("config changed, reloading")
				cw.queueReload()
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryConfig).Error("watch error: %v", err)
		}
	}
}

// markDirty records a change; each new event restarts the quiet period.
func (cw *ConfigWatcher) markDirty() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.pending = true
	cw.lastEvent = time.Now()
}

// settleElapsed reports whether a pending change has gone quiet for the
// debounce period, consuming it.
func (cw *ConfigWatcher) settleElapsed() bool {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if !cw.pending || time.Since(cw.lastEvent) < cw.debounce {
		return false
	}
	cw.pending = false
	return true
}

func (cw *ConfigWatcher) queueReload() {
	path := cw.path
	m := cw.m
	cw.loop.Reload(func() error {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		return m.Reconfigure(cfg)
	})
}
