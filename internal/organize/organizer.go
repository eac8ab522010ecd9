package organize

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"curator/internal/classify"
	"curator/internal/config"
	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/oplog"
	"curator/internal/services"
)

// Placement records one file landed in its destination.
type Placement struct {
	Source   string
	Target   string
	Category string
}

// Failure records one file the run could not place. Failures never stop the
// rest of the batch.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes one organizing run.
type Result struct {
	Placed   []Placement
	Skipped  []string
	Failures []Failure
}

// Organizer files sources into category subdirectories of a target.
type Organizer struct {
	cfg    *config.Config
	model  classify.Model
	sink   *oplog.Sink
	logger *slog.Logger
}

// New builds an organizer. sink may be nil when no journal is wanted.
func New(cfg *config.Config, model classify.Model, sink *oplog.Sink, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{
		cfg:    cfg,
		model:  model,
		sink:   sink,
		logger: logging.WithComponent(logger, "organize"),
	}
}

// Run organizes every regular file directly inside sourceDir into
// targetDir/<category>. Subdirectories are left alone. One bad file fails
// alone; the rest of the batch still runs.
func (o *Organizer) Run(ctx context.Context, sourceDir, targetDir string) (*Result, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "organize", "run", "source directory does not exist: "+sourceDir, err)
		}
		return nil, services.Wrap(services.ErrIO, "organize", "run", "failed to read "+sourceDir, err)
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "organize", "run", "failed to create "+targetDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		source := filepath.Join(sourceDir, entry.Name())
		placement, placed, err := o.PlaceFile(ctx, source, targetDir)
		switch {
		case err != nil:
			o.logger.Warn("failed to place file", logging.String("path", source), logging.Error(err))
			result.Failures = append(result.Failures, Failure{Path: source, Err: err})
		case placed:
			result.Placed = append(result.Placed, placement)
		default:
			result.Skipped = append(result.Skipped, source)
		}
	}

	o.logger.Info("run complete",
		logging.String("source", sourceDir),
		logging.String("target", targetDir),
		logging.Int("placed", len(result.Placed)),
		logging.Int("skipped", len(result.Skipped)),
		logging.Int("failed", len(result.Failures)))
	return result, nil
}

// PlaceFile classifies one file and moves it into targetDir/<category>,
// applying the configured collision policy. The skip policy reports placed
// false with a nil error.
func (o *Organizer) PlaceFile(ctx context.Context, source, targetDir string) (Placement, bool, error) {
	meta, err := classify.BuildMetadata(source)
	if err != nil {
		return Placement{}, false, err
	}
	category, err := o.model.PredictCategory(ctx, meta)
	if err != nil {
		return Placement{}, false, err
	}
	return o.moveInto(source, filepath.Join(targetDir, category), category, "organize")
}

// RunByDate files every regular file directly inside sourceDir into
// targetDir/<YYYY-MM-DD> subdirectories keyed by modification time.
func (o *Organizer) RunByDate(ctx context.Context, sourceDir, targetDir string) (*Result, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "organize", "by date", "source directory does not exist: "+sourceDir, err)
		}
		return nil, services.Wrap(services.ErrIO, "organize", "by date", "failed to read "+sourceDir, err)
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "organize", "by date", "failed to create "+targetDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		source := filepath.Join(sourceDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Failures = append(result.Failures, Failure{Path: source, Err: err})
			continue
		}
		day := info.ModTime().Format("2006-01-02")
		placement, placed, err := o.moveInto(source, filepath.Join(targetDir, day), day, "sort-by-date")
		switch {
		case err != nil:
			o.logger.Warn("failed to place file", logging.String("path", source), logging.Error(err))
			result.Failures = append(result.Failures, Failure{Path: source, Err: err})
		case placed:
			result.Placed = append(result.Placed, placement)
		default:
			result.Skipped = append(result.Skipped, source)
		}
	}
	return result, nil
}

func (o *Organizer) moveInto(source, destDir, label, operation string) (Placement, bool, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Placement{}, false, services.Wrap(services.ErrIO, "organize", operation, "failed to create "+destDir, err)
	}

	dest := filepath.Join(destDir, filepath.Base(source))
	if _, err := os.Stat(dest); err == nil {
		switch o.cfg.Organize.OnCollision {
		case "skip":
			o.logger.Info("destination exists, skipping", logging.String("path", dest))
			return Placement{}, false, nil
		case "overwrite":
		default:
			dest, err = fileutil.AllocateSuffixed(destDir, filepath.Base(source))
			if err != nil {
				return Placement{}, false, services.Wrap(services.ErrIO, "organize", operation, "failed to allocate destination", err)
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Placement{}, false, services.Wrap(services.ErrIO, "organize", operation, "failed to stat "+dest, err)
	}

	if err := fileutil.Move(source, dest); err != nil {
		return Placement{}, false, services.Wrap(services.ErrIO, "organize", operation, "failed to move "+source, err)
	}
	o.logger.Info("placed file",
		logging.String("from", source),
		logging.String("to", dest),
		logging.String("category", label))
	o.journal(operation, map[string]string{"from": source, "to": dest, "category": label})
	return Placement{Source: source, Target: dest, Category: label}, true, nil
}

// journal best-effort records the operation; a full disk under the journal
// must not undo a move that already happened.
func (o *Organizer) journal(operation string, details map[string]string) {
	if o.sink == nil {
		return
	}
	if err := o.sink.Record(operation, details); err != nil {
		o.logger.Warn("failed to journal operation", logging.Error(err))
	}
}

// CategoryCount is one row of a per-category result summary.
type CategoryCount struct {
	Category string
	Count    int
}

// CategorySummary aggregates a result by category for display, sorted by
// name.
func (r *Result) CategorySummary() []CategoryCount {
	counts := make(map[string]int)
	for _, placement := range r.Placed {
		counts[placement.Category]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]CategoryCount, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryCount{Category: name, Count: counts[name]})
	}
	return out
}
