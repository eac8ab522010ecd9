// Package dupes finds duplicate files under a directory tree by streaming
// 128-bit content fingerprints. The first file seen with a given fingerprint
// is the original; every later match is reported against it.
package dupes

import (
	"context"
	"crypto/md5"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/services"
)

const hashChunkSize = 8 * 1024

// Fingerprint is the 128-bit content digest used for candidate grouping.
type Fingerprint [md5.Size]byte

// Pair reports one duplicate: Candidate has the same content as the earlier
// seen Original.
type Pair struct {
	Candidate string
	Original  string
}

// Skip records a file the scan could not read. Skipped files never appear in
// pairs and never become originals.
type Skip struct {
	Path string
	Err  error
}

// Report is the outcome of one scan.
type Report struct {
	Scanned int
	Pairs   []Pair
	Skipped []Skip
}

// Detector scans directory trees for duplicates.
type Detector struct {
	verifyContent bool
	logger        *slog.Logger
}

// NewDetector builds a detector. With verifyContent set, fingerprint matches
// are confirmed byte for byte before being reported, so a hash collision can
// never name two distinct files duplicates.
func NewDetector(verifyContent bool, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Detector{
		verifyContent: verifyContent,
		logger:        logging.WithComponent(logger, "dupes"),
	}
}

// Scan walks root recursively and reports every duplicate pair in discovery
// order. A missing or unreadable root is an error; an unreadable file inside
// the tree is recorded and skipped.
func (d *Detector) Scan(ctx context.Context, root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "dupes", "scan", "directory does not exist: "+root, err)
		}
		return nil, services.Wrap(services.ErrIO, "dupes", "scan", "failed to stat "+root, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrIO, "dupes", "scan", root+" is not a directory", nil)
	}

	report := &Report{}
	index := make(map[Fingerprint][]string)

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			report.Skipped = append(report.Skipped, Skip{Path: path, Err: walkErr})
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		report.Scanned++
		sum, err := hashFile(path)
		if err != nil {
			d.logger.Warn("skipping unreadable file", logging.String("path", path), logging.Error(err))
			report.Skipped = append(report.Skipped, Skip{Path: path, Err: err})
			return nil
		}

		original, matched, err := d.matchOriginal(index[sum], path)
		if err != nil {
			report.Skipped = append(report.Skipped, Skip{Path: path, Err: err})
			return nil
		}
		if matched {
			report.Pairs = append(report.Pairs, Pair{Candidate: path, Original: original})
			return nil
		}
		index[sum] = append(index[sum], path)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrIO, "dupes", "scan", "walk failed under "+root, err)
	}

	d.logger.Info("scan complete",
		logging.String("root", root),
		logging.Int("scanned", report.Scanned),
		logging.Int("duplicates", len(report.Pairs)),
		logging.Int("skipped", len(report.Skipped)))
	return report, nil
}

// matchOriginal finds the earliest fingerprint sibling whose content really
// equals path's. Without verification the first sibling wins outright.
func (d *Detector) matchOriginal(siblings []string, path string) (string, bool, error) {
	if len(siblings) == 0 {
		return "", false, nil
	}
	if !d.verifyContent {
		return siblings[0], true, nil
	}
	for _, original := range siblings {
		same, err := fileutil.SameContent(original, path)
		if err != nil {
			return "", false, err
		}
		if same {
			return original, true, nil
		}
	}
	return "", false, nil
}

func hashFile(path string) (Fingerprint, error) {
	var sum Fingerprint
	file, err := os.Open(path)
	if err != nil {
		return sum, err
	}
	defer file.Close()

	digest := md5.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(digest, file, buf); err != nil {
		return sum, err
	}
	copy(sum[:], digest.Sum(nil))
	return sum, nil
}
