package processing

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mkvcleaner/internal/logging"
	"mkvcleaner/internal/services"
)

// BatchLockName guards against two batches running over the same state dir.
const BatchLockName = "mkvcleaner.lock"

// BatchSummary aggregates the results of ProcessBatch.
type BatchSummary struct {
	CorrelationID string
	Results       []*Result
	Processed     int
	Skipped       int
	Failed        int
}

// ProcessBatch processes paths one after another. A failing file is logged
// and the batch moves on; cancellation stops the batch before the next file
// and is the only error returned besides lock acquisition.
func (p *Processor) ProcessBatch(ctx context.Context, paths []string) (BatchSummary, error) {
	summary := BatchSummary{CorrelationID: uuid.NewString()}
	ctx = services.WithRequestID(ctx, summary.CorrelationID)
	logger := logging.WithContext(ctx, p.logger)

	unlock, err := p.lockBatch()
	if err != nil {
		return summary, err
	}
	defer unlock()

	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.Int("files", len(paths)),
	)
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			logger.Warn("batch cancelled",
				logging.String(logging.FieldEventType, "batch_cancelled"),
				logging.Int("remaining", len(paths)-i),
			)
			return summary, err
		}
		result, err := p.Process(ctx, path)
		summary.Results = append(summary.Results, result)
		switch {
		case err != nil:
			summary.Failed++
		case result.Skipped:
			summary.Skipped++
		default:
			summary.Processed++
		}
	}
	logger.Info("batch completed",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (p *Processor) lockBatch() (func(), error) {
	if p.dryRun || p.cfg.Paths.StateDir == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(p.cfg.Paths.StateDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "state dir", "create state directory", err)
	}
	lock := flock.New(filepath.Join(p.cfg.Paths.StateDir, BatchLockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "batch", "lock", "acquire batch lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrTransient, "batch", "lock", "another mkvcleaner batch is running", nil)
	}
	return func() { _ = lock.Unlock() }, nil
}

// CollectInputs expands directories in paths into the MKV files they hold.
// Files are passed through as given, missing paths included, so that each
// one is reported by Process. Output directories are never descended into.
func (p *Processor) CollectInputs(paths []string, recursive bool) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			add(path)
			continue
		}
		found, err := p.scanDir(path, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return out, nil
}

func (p *Processor) scanDir(root string, recursive bool) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || p.isOutputDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".mkv") {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "batch", "scan", fmt.Sprintf("read %s", root), err)
	}
	slices.Sort(found)
	return found, nil
}

func (p *Processor) isOutputDir(path string) bool {
	if filepath.Base(path) == p.cfg.Paths.OutputSubdir {
		return true
	}
	if override := p.cfg.Paths.OutputDir; override != "" {
		return sameDir(path, override)
	}
	return false
}

func sameDir(a, b string) bool {
	ai, errA := os.Stat(a)
	bi, errB := os.Stat(b)
	if errors.Join(errA, errB) != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return os.SameFile(ai, bi)
}
