// Package testsupport holds shared scaffolding for package tests: temp
// configs with isolated directories and quick file fixtures.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteConfig writes a config file under base pointing every path at
// subdirectories of base, appends extra TOML verbatim, and returns the
// config path.
func WriteConfig(t *testing.T, base, extra string) string {
	t.Helper()
	contents := fmt.Sprintf(`
[paths]
source_dir = %q
target_dir = %q
log_dir = %q
key_file = %q
operation_log = %q

[rules]
Documents = [".pdf", ".txt"]
Images = [".png", ".jpg"]
%s`,
		filepath.Join(base, "inbox"),
		filepath.Join(base, "filed"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "vault.key"),
		filepath.Join(base, "logs", "operations.jsonl"),
		extra)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// WriteFile creates path (and parents) with the given contents.
func WriteFile(t *testing.T, path, contents string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
