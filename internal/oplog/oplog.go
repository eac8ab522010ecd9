// Package oplog records every mutating file operation as an append-only
// JSON-lines journal. One entry per line keeps the log greppable and lets a
// torn final write corrupt at most the last record.
package oplog

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"curator/internal/services"
)

// Entry is one journaled operation.
type Entry struct {
	ID        string            `json:"id"`
	Time      time.Time         `json:"time"`
	Operation string            `json:"operation"`
	Details   map[string]string `json:"details,omitempty"`
}

// Sink appends entries to the journal file. Safe for concurrent use.
type Sink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
	now  func() time.Time
}

// NewSink opens (creating if needed) the journal at path for appending.
func NewSink(path string) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "oplog", "open", "failed to create log directory", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "oplog", "open", "failed to open operation log", err)
	}
	return &Sink{file: file, enc: json.NewEncoder(file), now: time.Now}, nil
}

// Record appends one entry. The details map is journaled as-is; callers keep
// keys short and values absolute paths.
func (s *Sink) Record(operation string, details map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := Entry{
		ID:        uuid.NewString(),
		Time:      s.now().UTC(),
		Operation: operation,
		Details:   details,
	}
	if err := s.enc.Encode(entry); err != nil {
		return services.Wrap(services.ErrIO, "oplog", "record", "failed to append entry", err)
	}
	return nil
}

// Close releases the journal file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Read returns all entries in the journal in write order. A missing journal
// is an empty history, not an error. Unparseable lines are skipped so a torn
// tail write never hides the rest of the log.
func Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrIO, "oplog", "read", "failed to open operation log", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrIO, "oplog", "read", "failed to scan operation log", err)
	}
	return entries, nil
}

// Tail returns the most recent n entries, oldest first. n <= 0 means all.
func Tail(path string, n int) ([]Entry, error) {
	entries, err := Read(path)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
