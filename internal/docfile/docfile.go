// Package docfile creates placeholder files in a few common formats. The
// placeholders carry just enough structure for other tools to recognize the
// type: the video stub has a valid MP4 ftyp box, the Word stub is a minimal
// but well-formed OOXML package.
package docfile

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"curator/internal/services"
)

// mp4Header is an MP4 ftyp box declaring the mp42 brand. Players and type
// sniffers identify the file as video from these 24 bytes alone.
var mp4Header = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
	'm', 'p', '4', '2', 'i', 's', 'o', 'm',
}

// CreateText writes a plain-text file containing body. An empty body yields
// an empty file.
func CreateText(path, body string) error {
	if err := refuseExisting(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "docfile", "create text", "failed to write "+path, err)
	}
	return nil
}

// CreateVideo writes an MP4 placeholder with a valid ftyp header and no
// media data.
func CreateVideo(path string) error {
	if err := refuseExisting(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, mp4Header, 0o644); err != nil {
		return services.Wrap(services.ErrIO, "docfile", "create video", "failed to write "+path, err)
	}
	return nil
}

// CreateWord writes a minimal OOXML word-processing document containing body
// as its single paragraph.
func CreateWord(path, body string) error {
	if err := refuseExisting(path); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "docfile", "create word", "failed to create "+path, err)
	}
	writer := zip.NewWriter(out)

	parts := []struct {
		name     string
		contents string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(body)},
	}
	for _, part := range parts {
		entry, err := writer.Create(part.name)
		if err == nil {
			_, err = entry.Write([]byte(part.contents))
		}
		if err != nil {
			writer.Close()
			out.Close()
			os.Remove(path)
			return services.Wrap(services.ErrIO, "docfile", "create word", "failed to write package part "+part.name, err)
		}
	}
	err = writer.Close()
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return services.Wrap(services.ErrIO, "docfile", "create word", "failed to finalize "+path, err)
	}
	return nil
}

// refuseExisting keeps placeholder creation from clobbering real files.
func refuseExisting(path string) error {
	if _, err := os.Stat(path); err == nil {
		return services.Wrap(services.ErrIO, "docfile", "create", path+" already exists", nil)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrIO, "docfile", "create", "failed to stat "+path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return services.Wrap(services.ErrIO, "docfile", "create", "failed to create parent directory", err)
	}
	return nil
}
