package classify

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackMIME = "application/octet-stream"

// FileMetadata is the read-only view of a file handed to a classification
// model. It is derived from the filesystem at classification time and never
// persisted.
type FileMetadata struct {
	Name     string
	Size     uint64
	MIMEType string
}

// BuildMetadata stats path and sniffs its MIME type from content. A failed
// sniff is not an error; the type degrades to application/octet-stream.
func BuildMetadata(path string) (FileMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMetadata{}, err
	}
	if info.IsDir() {
		return FileMetadata{}, fmt.Errorf("%s is a directory", path)
	}

	meta := FileMetadata{
		Name:     filepath.Base(path),
		Size:     uint64(info.Size()),
		MIMEType: fallbackMIME,
	}
	if detected, err := mimetype.DetectFile(path); err == nil && detected != nil {
		meta.MIMEType = detected.String()
	}
	return meta, nil
}

// Description renders the metadata as a compact single line for model
// prompts.
func (m FileMetadata) Description() string {
	return fmt.Sprintf("name=%s size=%d mime=%s", m.Name, m.Size, m.MIMEType)
}
