package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"curator/internal/services"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestCompressExtractFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "note.txt")
	writeFile(t, src, "archive me")
	archive := filepath.Join(dir, "note.zip")

	if err := Compress(src, archive); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	out := filepath.Join(dir, "out")
	if err := Extract(archive, out); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := readFile(t, filepath.Join(out, "note.txt")); got != "archive me" {
		t.Fatalf("round trip produced %q", got)
	}
}

func TestCompressExtractTree(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "project")
	writeFile(t, filepath.Join(root, "readme.md"), "top")
	writeFile(t, filepath.Join(root, "docs", "guide.md"), "nested")
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	archive := filepath.Join(dir, "project.zip")

	if err := Compress(root, archive); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	out := filepath.Join(dir, "out")
	if err := Extract(archive, out); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := readFile(t, filepath.Join(out, "project", "readme.md")); got != "top" {
		t.Fatalf("readme = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "project", "docs", "guide.md")); got != "nested" {
		t.Fatalf("guide = %q", got)
	}
	info, err := os.Stat(filepath.Join(out, "project", "empty"))
	if err != nil || !info.IsDir() {
		t.Fatalf("empty directory not preserved: %v", err)
	}
}

func TestCompressMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Compress(filepath.Join(dir, "absent"), filepath.Join(dir, "out.zip"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestExtractMissingArchive(t *testing.T) {
	dir := t.TempDir()
	err := Extract(filepath.Join(dir, "absent.zip"), filepath.Join(dir, "out"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")

	out, err := os.Create(archive)
	if err != nil {
		t.Fatal(err)
	}
	writer := zip.NewWriter(out)
	entry, err := writer.Create("../escape.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte("pwned")); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(dir, "out")
	if err := Extract(archive, target); err == nil {
		t.Fatal("expected traversal entry to be rejected")
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("traversal entry was written outside the extraction root")
	}
}
