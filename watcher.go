package typescope

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Invalidator watches files on disk and evicts them from the engine's session
// cache when they change, so a long-lived Engine never serves stale
// extractions. It is optional; callers that re-extract on every request can
// ignore it.
type Invalidator struct {
	engine   *Engine
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewInvalidator creates an Invalidator bound to the engine's cache.
func NewInvalidator(engine *Engine) (*Invalidator, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Invalidator{
		engine:  engine,
		watcher: watcher,
		logger:  engine.logger,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Watch adds a file or directory to the watch set.
func (iv *Invalidator) Watch(path string) error {
	return iv.watcher.Add(path)
}

// Start begins processing filesystem events.
func (iv *Invalidator) Start(ctx context.Context) {
	go iv.run(ctx)
}

// Stop ends event processing and closes the underlying watcher.
func (iv *Invalidator) Stop() {
	iv.stopOnce.Do(func() {
		close(iv.stopCh)
		<-iv.doneCh
		iv.watcher.Close()
	})
}

func (iv *Invalidator) run(ctx context.Context) {
	defer close(iv.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-iv.stopCh:
			return
		case event, ok := <-iv.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				iv.engine.InvalidateFile(event.Name)
				iv.logger.Debug("evicted changed file from session cache",
					slog.String("path", event.Name))
			}
		case err, ok := <-iv.watcher.Errors:
			if !ok {
				return
			}
			iv.logger.Warn("file watcher error", slog.Any("error", err))
		}
	}
}
