package organize

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/services"
)

// defaultSettleDelay is how long the watcher waits after a create event
// before touching the file, giving slow writers time to finish.
const defaultSettleDelay = 500 * time.Millisecond

// Watcher organizes files as they appear in the source directory. Only one
// watcher may run per machine; a lock file enforces that.
type Watcher struct {
	cfg       *config.Config
	organizer *Organizer
	logger    *slog.Logger

	settleDelay time.Duration

	mu      sync.Mutex
	running bool
	lock    *flock.Flock
	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWatcher builds a watcher over the configured source directory.
func NewWatcher(cfg *config.Config, organizer *Organizer, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		cfg:         cfg,
		organizer:   organizer,
		logger:      logging.WithComponent(logger, "watcher"),
		settleDelay: defaultSettleDelay,
	}
}

// Start acquires the instance lock, ensures the watched directories exist,
// and begins processing create events. It returns immediately; events are
// handled on a background goroutine until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return services.Wrap(services.ErrIO, "watcher", "start", "watcher already running", nil)
	}

	if err := os.MkdirAll(w.cfg.Paths.SourceDir, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "watcher", "start", "failed to create source directory", err)
	}
	if err := os.MkdirAll(w.cfg.Paths.TargetDir, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "watcher", "start", "failed to create target directory", err)
	}
	if err := w.cfg.EnsureLogDir(); err != nil {
		return services.Wrap(services.ErrIO, "watcher", "start", "failed to create log directory", err)
	}

	lock := flock.New(w.cfg.LockFilePath())
	held, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrIO, "watcher", "start", "failed to acquire instance lock", err)
	}
	if !held {
		return services.Wrap(services.ErrIO, "watcher", "start", "another curator instance holds "+w.cfg.LockFilePath(), nil)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		lock.Unlock()
		return services.Wrap(services.ErrIO, "watcher", "start", "failed to create filesystem watcher", err)
	}
	if err := fsw.Add(w.cfg.Paths.SourceDir); err != nil {
		fsw.Close()
		lock.Unlock()
		return services.Wrap(services.ErrIO, "watcher", "start", "failed to watch "+w.cfg.Paths.SourceDir, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.lock = lock
	w.fsw = fsw
	w.cancel = cancel
	w.running = true

	w.wg.Add(1)
	go w.loop(runCtx, fsw)

	w.logger.Info("watching for new files",
		logging.String("source", w.cfg.Paths.SourceDir),
		logging.String("target", w.cfg.Paths.TargetDir))
	return nil
}

// Stop halts event processing and releases the instance lock. Safe to call
// when not running.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	cancel := w.cancel
	fsw := w.fsw
	lock := w.lock
	w.cancel = nil
	w.fsw = nil
	w.lock = nil
	w.mu.Unlock()

	cancel()
	err := fsw.Close()
	w.wg.Wait()
	if unlockErr := lock.Unlock(); err == nil {
		err = unlockErr
	}
	if err != nil {
		return services.Wrap(services.ErrIO, "watcher", "stop", "failed to shut down cleanly", err)
	}
	w.logger.Info("watcher stopped")
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				w.handleCreate(ctx, event.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

// handleCreate waits for the file to settle, then files it. Directories and
// files that vanished before the delay elapsed are ignored.
func (w *Watcher) handleCreate(ctx context.Context, path string) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(w.settleDelay):
	}

	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.logger.Warn("failed to stat new file", logging.String("path", path), logging.Error(err))
		}
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	w.logger.Info("new file detected", logging.String("path", filepath.Base(path)))
	if _, _, err := w.organizer.PlaceFile(ctx, path, w.cfg.Paths.TargetDir); err != nil {
		w.logger.Warn("failed to organize new file", logging.String("path", path), logging.Error(err))
	}
}
