package organize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"curator/internal/classify"
	"curator/internal/config"
	"curator/internal/oplog"
	"curator/internal/services"
)

func testConfig(t *testing.T, extra string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	contents := fmt.Sprintf(`
[paths]
source_dir = %q
target_dir = %q
log_dir = %q

[rules]
Documents = [".pdf", ".txt"]
Images = [".png"]
%s`, filepath.Join(dir, "inbox"), filepath.Join(dir, "filed"), filepath.Join(dir, "logs"), extra)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("load test config: %v", err)
	}
	return cfg
}

func newTestOrganizer(t *testing.T, cfg *config.Config) *Organizer {
	t.Helper()
	model, err := classify.NewModelFromConfig(cfg)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return New(cfg, model, nil, nil)
}

func writeSource(t *testing.T, cfg *config.Config, name, contents string) string {
	t.Helper()
	if err := os.MkdirAll(cfg.Paths.SourceDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfg.Paths.SourceDir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPlacesFilesByCategory(t *testing.T) {
	cfg := testConfig(t, "")
	org := newTestOrganizer(t, cfg)
	writeSource(t, cfg, "report.pdf", "doc")
	writeSource(t, cfg, "photo.png", "img")
	writeSource(t, cfg, "mystery.bin", "???")

	result, err := org.Run(context.Background(), cfg.Paths.SourceDir, cfg.Paths.TargetDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Placed) != 3 || len(result.Failures) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	for name, category := range map[string]string{
		"report.pdf":  "Documents",
		"photo.png":   "Images",
		"mystery.bin": "Others",
	} {
		dest := filepath.Join(cfg.Paths.TargetDir, category, name)
		if _, err := os.Stat(dest); err != nil {
			t.Errorf("%s not placed at %s: %v", name, dest, err)
		}
	}
	entries, err := os.ReadDir(cfg.Paths.SourceDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("source not emptied: %v", entries)
	}
}

func TestRunIgnoresSubdirectories(t *testing.T) {
	cfg := testConfig(t, "")
	org := newTestOrganizer(t, cfg)
	writeSource(t, cfg, "a.txt", "x")
	if err := os.MkdirAll(filepath.Join(cfg.Paths.SourceDir, "keep-me"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := org.Run(context.Background(), cfg.Paths.SourceDir, cfg.Paths.TargetDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Placed) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.SourceDir, "keep-me")); err != nil {
		t.Fatal("subdirectory was touched")
	}
}

func TestRunMissingSource(t *testing.T) {
	cfg := testConfig(t, "")
	org := newTestOrganizer(t, cfg)
	_, err := org.Run(context.Background(), filepath.Join(t.TempDir(), "absent"), cfg.Paths.TargetDir)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCollisionSuffix(t *testing.T) {
	cfg := testConfig(t, "")
	org := newTestOrganizer(t, cfg)
	destDir := filepath.Join(cfg.Paths.TargetDir, "Documents")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(destDir, "a.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeSource(t, cfg, "a.txt", "new")

	result, err := org.Run(context.Background(), cfg.Paths.SourceDir, cfg.Paths.TargetDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Placed) != 1 || result.Placed[0].Target != filepath.Join(destDir, "a-1.txt") {
		t.Fatalf("unexpected result %+v", result)
	}
	old, _ := os.ReadFile(filepath.Join(destDir, "a.txt"))
	if string(old) != "old" {
		t.Fatal("existing file was clobbered under suffix policy")
	}
}

func TestCollisionOverwrite(t *testing.T) {
	cfg := testConfig(t, "\n[organize]\non_collision = \"overwrite\"\n")
	org := newTestOrganizer(t, cfg)
	destDir := filepath.Join(cfg.Paths.TargetDir, "Documents")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(destDir, "a.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeSource(t, cfg, "a.txt", "new")

	if _, err := org.Run(context.Background(), cfg.Paths.SourceDir, cfg.Paths.TargetDir); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(destDir, "a.txt"))
	if string(got) != "new" {
		t.Fatalf("overwrite policy left %q", got)
	}
}

func TestCollisionSkip(t *testing.T) {
	cfg := testConfig(t, "\n[organize]\non_collision = \"skip\"\n")
	org := newTestOrganizer(t, cfg)
	destDir := filepath.Join(cfg.Paths.TargetDir, "Documents")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(destDir, "a.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	source := writeSource(t, cfg, "a.txt", "new")

	result, err := org.Run(context.Background(), cfg.Paths.SourceDir, cfg.Paths.TargetDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Skipped) != 1 || len(result.Placed) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatal("skipped file must stay in the source")
	}
}

func TestRunJournalsPlacements(t *testing.T) {
	cfg := testConfig(t, "")
	journal := filepath.Join(t.TempDir(), "operations.jsonl")
	sink, err := oplog.NewSink(journal)
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	model, err := classify.NewModelFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	org := New(cfg, model, sink, nil)
	writeSource(t, cfg, "report.pdf", "doc")

	if _, err := org.Run(context.Background(), cfg.Paths.SourceDir, cfg.Paths.TargetDir); err != nil {
		t.Fatalf("Run: %v", err)
	}
	entries, err := oplog.Read(journal)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Operation != "organize" {
		t.Fatalf("unexpected journal %+v", entries)
	}
	if entries[0].Details["category"] != "Documents" {
		t.Fatalf("unexpected details %v", entries[0].Details)
	}
}

func TestRunByDate(t *testing.T) {
	cfg := testConfig(t, "")
	org := newTestOrganizer(t, cfg)
	a := writeSource(t, cfg, "old.txt", "x")
	writeSource(t, cfg, "new.txt", "y")

	past := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	if err := os.Chtimes(a, past, past); err != nil {
		t.Fatal(err)
	}

	result, err := org.RunByDate(context.Background(), cfg.Paths.SourceDir, cfg.Paths.TargetDir)
	if err != nil {
		t.Fatalf("RunByDate: %v", err)
	}
	if len(result.Placed) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.TargetDir, "2026-03-15", "old.txt")); err != nil {
		t.Fatalf("dated placement missing: %v", err)
	}
}

func TestCategorySummary(t *testing.T) {
	result := &Result{Placed: []Placement{
		{Category: "Images"},
		{Category: "Documents"},
		{Category: "Images"},
	}}
	summary := result.CategorySummary()
	if len(summary) != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary[0].Category != "Documents" || summary[0].Count != 1 {
		t.Fatalf("unexpected first row %+v", summary[0])
	}
	if summary[1].Category != "Images" || summary[1].Count != 2 {
		t.Fatalf("unexpected second row %+v", summary[1])
	}
}
