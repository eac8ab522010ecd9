// Package archive packs files and directory trees into zip archives and
// unpacks them again. Entry names are always slash-separated relative paths
// so archives travel across platforms.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"curator/internal/services"
)

// Compress writes a zip archive at dst containing src. A file becomes a
// single entry named after its base name; a directory becomes the tree
// rooted at its base name. dst is removed on failure so a half-written
// archive never survives.
func Compress(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "archive", "compress", "source does not exist: "+src, err)
		}
		return services.Wrap(services.ErrIO, "archive", "compress", "failed to stat "+src, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return services.Wrap(services.ErrIO, "archive", "compress", "failed to create archive "+dst, err)
	}
	writer := zip.NewWriter(out)

	if info.IsDir() {
		err = compressTree(writer, src)
	} else {
		err = compressFile(writer, src, filepath.Base(src), info)
	}
	if err == nil {
		err = writer.Close()
	} else {
		writer.Close()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return services.Wrap(services.ErrIO, "archive", "compress", "failed to write archive "+dst, err)
	}
	return nil
}

func compressTree(writer *zip.Writer, root string) error {
	base := filepath.Base(root)
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := base
		if rel != "." {
			name = base + "/" + filepath.ToSlash(rel)
		}
		if entry.IsDir() {
			_, err := writer.Create(name + "/")
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		return compressFile(writer, path, name, info)
	})
}

func compressFile(writer *zip.Writer, path, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return err
}

// Extract unpacks the archive at src into the directory dst, creating it if
// needed. Entry paths that would escape dst are rejected before anything is
// written.
func Extract(src, dst string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "archive", "extract", "archive does not exist: "+src, err)
		}
		return services.Wrap(services.ErrIO, "archive", "extract", "failed to open archive "+src, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "archive", "extract", "failed to create "+dst, err)
	}
	for _, entry := range reader.File {
		target, err := safeJoin(dst, entry.Name)
		if err != nil {
			return services.Wrap(services.ErrIO, "archive", "extract", "refusing unsafe entry", err)
		}
		if err := extractEntry(entry, target); err != nil {
			return services.Wrap(services.ErrIO, "archive", "extract", "failed to extract "+entry.Name, err)
		}
	}
	return nil
}

// safeJoin resolves an archive entry name under root, rejecting absolute
// names and parent traversal.
func safeJoin(root, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes extraction root", name)
	}
	return filepath.Join(root, cleaned), nil
}

func extractEntry(entry *zip.File, target string) error {
	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(dst, src)
	if closeErr := dst.Close(); copyErr == nil {
		copyErr = closeErr
	}
	return copyErr
}
