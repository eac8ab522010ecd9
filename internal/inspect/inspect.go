// Package inspect reads file details for display: size, timestamps, sniffed
// MIME type, and head-of-file previews.
package inspect

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"curator/internal/services"
)

// Details is the metadata view of a single file or directory.
type Details struct {
	Path     string
	Size     int64
	Mode     fs.FileMode
	Modified time.Time
	IsDir    bool
	MIMEType string
}

// Describe stats path and, for regular files, sniffs the MIME type from
// content.
func Describe(path string) (Details, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Details{}, services.Wrap(services.ErrNotFound, "inspect", "describe", "no such path: "+path, err)
		}
		return Details{}, services.Wrap(services.ErrIO, "inspect", "describe", "failed to stat "+path, err)
	}

	details := Details{
		Path:     path,
		Size:     info.Size(),
		Mode:     info.Mode(),
		Modified: info.ModTime(),
		IsDir:    info.IsDir(),
	}
	if info.Mode().IsRegular() {
		if detected, err := mimetype.DetectFile(path); err == nil && detected != nil {
			details.MIMEType = detected.String()
		}
	}
	return details, nil
}

// Preview returns up to maxLines lines from the start of the file. Long
// lines are returned whole; the final line needs no trailing newline.
func Preview(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "inspect", "preview", "no such file: "+path, err)
		}
		return nil, services.Wrap(services.ErrIO, "inspect", "preview", "failed to open "+path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for len(lines) < maxLines && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrIO, "inspect", "preview", "failed to read "+path, err)
	}
	return lines, nil
}
