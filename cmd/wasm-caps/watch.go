package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-caps/errors"
)

// watch calls fn once, then again on every write or create of path, until
// ctx is done. Failures of fn are logged and do not stop the loop.
func watch(ctx context.Context, path string, logger *zap.Logger, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindUnsupported, err, "create watcher")
	}
	defer watcher.Close()

	// Watch the directory; editors and build tools often replace the file.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "watch directory "+dir)
	}
	logger.Info("watching", zap.String("path", path))

	rerun := func() {
		if err := fn(); err != nil {
			logger.Error("inspection failed", zap.String("path", path), zap.Error(err))
		}
	}
	rerun()

	filename := filepath.Base(path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Debug("file changed",
					zap.String("event", event.Op.String()),
					zap.String("file", event.Name))
				rerun()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}
