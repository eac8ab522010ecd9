package organize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"curator/internal/config"
)

func newTestWatcher(t *testing.T, cfg *config.Config) *Watcher {
	t.Helper()
	w := NewWatcher(cfg, newTestOrganizer(t, cfg), nil)
	w.settleDelay = 10 * time.Millisecond
	return w
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", path)
}

func TestWatcherOrganizesNewFile(t *testing.T) {
	cfg := testConfig(t, "")
	w := newTestWatcher(t, cfg)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(cfg.Paths.SourceDir, "report.pdf")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitForFile(t, filepath.Join(cfg.Paths.TargetDir, "Documents", "report.pdf"))
}

func TestWatcherIgnoresDirectories(t *testing.T) {
	cfg := testConfig(t, "")
	w := newTestWatcher(t, cfg)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.Mkdir(filepath.Join(cfg.Paths.SourceDir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfg.Paths.SourceDir, "photo.png")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitForFile(t, filepath.Join(cfg.Paths.TargetDir, "Images", "photo.png"))
	if _, err := os.Stat(filepath.Join(cfg.Paths.SourceDir, "subdir")); err != nil {
		t.Fatal("directory must be left alone")
	}
}

func TestWatcherSingleInstance(t *testing.T) {
	cfg := testConfig(t, "")
	first := newTestWatcher(t, cfg)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer first.Stop()

	second := newTestWatcher(t, cfg)
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("second watcher must fail to acquire the instance lock")
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	cfg := testConfig(t, "")
	w := newTestWatcher(t, cfg)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

func TestWatcherRestartAfterStop(t *testing.T) {
	cfg := testConfig(t, "")
	w := newTestWatcher(t, cfg)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("final Stop: %v", err)
	}
}
