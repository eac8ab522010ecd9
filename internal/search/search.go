// Package search scans a directory tree for files whose name or content
// contains a keyword. Matching is case-insensitive with Unicode case
// folding, so queries behave the same for ASCII and non-ASCII names.
package search

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"curator/internal/logging"
	"curator/internal/services"
)

// Match is one hit. Line is zero for name matches and 1-based for content
// matches; Snippet is the matching line trimmed for display.
type Match struct {
	Path    string
	Line    int
	Snippet string
}

const snippetLimit = 160

// Searcher walks trees for keyword matches.
type Searcher struct {
	folder cases.Caser
	logger *slog.Logger
}

// NewSearcher builds a searcher with a Unicode case folder.
func NewSearcher(logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Searcher{
		folder: cases.Fold(),
		logger: logging.WithComponent(logger, "search"),
	}
}

// Search walks root recursively and returns matches in discovery order. Name
// matches come before content matches for the same file. Unreadable files
// are logged and skipped, never fatal.
func (s *Searcher) Search(ctx context.Context, root, keyword string) ([]Match, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, services.Wrap(services.ErrIO, "search", "search", "keyword must not be empty", nil)
	}
	if info, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "search", "search", "directory does not exist: "+root, err)
		}
		return nil, services.Wrap(services.ErrIO, "search", "search", "failed to stat "+root, err)
	} else if !info.IsDir() {
		return nil, services.Wrap(services.ErrIO, "search", "search", root+" is not a directory", nil)
	}

	needle := s.folder.String(keyword)
	var matches []Match
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			s.logger.Warn("skipping unreadable path", logging.String("path", path), logging.Error(walkErr))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.Contains(s.folder.String(entry.Name()), needle) {
			matches = append(matches, Match{Path: path})
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		hits, err := s.scanContents(path, needle)
		if err != nil {
			s.logger.Warn("skipping unreadable file", logging.String("path", path), logging.Error(err))
			return nil
		}
		matches = append(matches, hits...)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrIO, "search", "search", "walk failed under "+root, err)
	}
	return matches, nil
}

func (s *Searcher) scanContents(path, needle string) ([]Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var hits []Match
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if !strings.Contains(s.folder.String(text), needle) {
			continue
		}
		snippet := strings.TrimSpace(text)
		if len(snippet) > snippetLimit {
			snippet = snippet[:snippetLimit]
		}
		hits = append(hits, Match{Path: path, Line: line, Snippet: snippet})
	}
	if err := scanner.Err(); err != nil {
		// Binary files routinely exceed the scanner's token limit. Name
		// matches already reported stand; content just is not searchable.
		if errors.Is(err, bufio.ErrTooLong) {
			return hits, nil
		}
		return nil, err
	}
	return hits, nil
}
