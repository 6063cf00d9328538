package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called when the data file changes outside the session.
type ChangeCallback func(path string)

const watchDebounce = 200 * time.Millisecond

// Watch observes the directory holding f's data file until ctx is
// cancelled. When the file's content no longer matches what f last read
// or wrote, it logs a warning and calls cb (if non-nil). The in-memory
// list stays authoritative; the next save overwrites the external edit.
//
// The directory is watched rather than the file because saves replace
// the file by rename.
func Watch(ctx context.Context, f *File, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(f.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(f.Path())

	logger.Debug("watcher: started", slog.String("path", target))

	var timer *time.Timer
	var timerCh <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
			timerCh = timer.C
		} else {
			timer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Debug("watcher: stopped")
			return nil

		case <-timerCh:
			checkExternal(f, target, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func checkExternal(f *File, path string, logger *slog.Logger, cb ChangeCallback) {
	same, err := f.unchanged()
	if err != nil {
		logger.Warn("watcher: read failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	if same {
		return
	}
	logger.Warn("data file changed outside this session; the next save will overwrite it",
		slog.String("path", path))
	if cb != nil {
		cb(path)
	}
}
