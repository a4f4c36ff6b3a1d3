package audiostore

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReadyCallback is called when an artifact lands in the cache directory.
// key is the artifact key (file name relative to the cache root).
type ReadyCallback func(key string)

// Watch starts an fsnotify watcher on the cache root and invokes cb for
// every artifact that finishes writing, until ctx is cancelled. Temp files
// and content-type sidecars are ignored. Events are debounced briefly so a
// rename following the atomic write pattern yields a single callback.
func Watch(ctx context.Context, root string, logger *slog.Logger, cb ReadyCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}
	logger.Info("audio watcher: started", slog.String("root", root))

	pending := make(map[string]struct{})
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	scheduleFlush := func() {
		if flushTimer == nil {
			flushTimer = time.NewTimer(200 * time.Millisecond)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			logger.Info("audio watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".type") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[name] = struct{}{}
			scheduleFlush()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("audio watcher: error", slog.String("error", err.Error()))

		case <-flushCh:
			for key := range pending {
				if cb != nil {
					cb(key)
				}
				delete(pending, key)
			}
		}
	}
}
