package oplog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSinkRecordAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "operations.jsonl")
	sink, err := NewSink(path)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	sink.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	if err := sink.Record("move", map[string]string{"from": "/a", "to": "/b"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := sink.Record("delete", map[string]string{"path": "/b"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Operation != "move" || entries[1].Operation != "delete" {
		t.Fatalf("unexpected order: %q then %q", entries[0].Operation, entries[1].Operation)
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Fatal("entry IDs must be unique and non-empty")
	}
	if entries[0].Details["to"] != "/b" {
		t.Fatalf("details lost: %v", entries[0].Details)
	}
	if !entries[1].Time.After(entries[0].Time) {
		t.Fatal("timestamps must advance")
	}
}

func TestReadMissingJournal(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if entries != nil {
		t.Fatalf("expected empty history, got %v", entries)
	}
}

func TestReadSkipsTornLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.jsonl")
	contents := `{"id":"1","time":"2026-08-01T12:00:00Z","operation":"move"}
{"id":"2","time":"2026-08-01T12:00:01Z","oper
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	entries, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != "move" {
		t.Fatalf("unexpected entries %v", entries)
	}
}

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.jsonl")
	sink, err := NewSink(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, op := range []string{"a", "b", "c", "d"} {
		if err := sink.Record(op, nil); err != nil {
			t.Fatal(err)
		}
	}
	sink.Close()

	entries, err := Tail(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Operation != "c" || entries[1].Operation != "d" {
		t.Fatalf("unexpected tail %v", entries)
	}

	all, err := Tail(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("Tail(0) returned %d entries", len(all))
	}
}
