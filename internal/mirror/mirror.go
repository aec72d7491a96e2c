// Package mirror implements the copy engine: it walks a source tree
// and converges a destination tree toward a content-exact copy of it,
// copying only files that are new or whose digest differs.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Kuchukov/Rolling-s/internal/digest"
	"github.com/Kuchukov/Rolling-s/internal/event"
	"github.com/Kuchukov/Rolling-s/internal/filter"
	"github.com/Kuchukov/Rolling-s/internal/stats"
)

// ErrSourceNotFound is returned when the source path is missing or is
// not a directory.
var ErrSourceNotFound = errors.New("source directory not found")

// Config describes a mirror run.
type Config struct {
	SrcRoot   string
	DstRoot   string
	Algorithm digest.Algorithm
	BlockSize int
	Excludes  *filter.Set
	KeepGoing bool // capture per-file errors instead of aborting
	DryRun    bool
	Events    chan<- event.Event
	Stats     *stats.Collector
}

// Result is the outcome of a mirror run.
type Result struct {
	Stats stats.Snapshot
	Err   error
}

// Run executes one mirror run, blocking until complete. Running two
// instances against the same destination concurrently is unsupported.
func Run(ctx context.Context, cfg Config) Result {
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}

	if cfg.BlockSize <= 0 {
		return Result{
			Stats: collector.Snapshot(),
			Err:   fmt.Errorf("block size must be positive, got %d", cfg.BlockSize),
		}
	}
	if _, err := digest.Parse(cfg.Algorithm.String()); err != nil {
		return Result{Stats: collector.Snapshot(), Err: err}
	}

	srcRoot, err := filepath.Abs(cfg.SrcRoot)
	if err != nil {
		return Result{Stats: collector.Snapshot(), Err: fmt.Errorf("resolve source: %w", err)}
	}
	dstRoot, err := filepath.Abs(cfg.DstRoot)
	if err != nil {
		return Result{Stats: collector.Snapshot(), Err: fmt.Errorf("resolve destination: %w", err)}
	}

	srcInfo, err := os.Stat(srcRoot)
	if err != nil || !srcInfo.IsDir() {
		return Result{
			Stats: collector.Snapshot(),
			Err:   fmt.Errorf("%w: %s", ErrSourceNotFound, srcRoot),
		}
	}

	r := &run{cfg: cfg, stats: collector}
	r.emit(event.Event{Type: event.RunStarted, Path: srcRoot})

	// Bootstrap the destination root before walking.
	if !cfg.DryRun {
		if _, statErr := os.Stat(dstRoot); statErr != nil {
			if !os.IsNotExist(statErr) {
				return Result{
					Stats: collector.Snapshot(),
					Err:   fmt.Errorf("stat destination: %w", statErr),
				}
			}
			if mkErr := os.MkdirAll(dstRoot, srcInfo.Mode().Perm()); mkErr != nil {
				return Result{
					Stats: collector.Snapshot(),
					Err:   fmt.Errorf("create destination: %w", mkErr),
				}
			}
			if mdErr := copyTimes(srcRoot, dstRoot); mdErr != nil {
				return Result{Stats: collector.Snapshot(), Err: mdErr}
			}
			collector.AddDirsCreated(1)
			r.emit(event.Event{Type: event.DirCreated, Path: "."})
		}
	}

	// A derived context lets an abort stop the scanner mid-walk.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc := newScanner(srcRoot, dstRoot, cfg.KeepGoing)
	tasks, walkErrs := sc.scan(ctx)

	// Single sequential executor: tasks arrive in walk order, and one
	// file is fully hashed or copied before the next begins.
	for tasks != nil || walkErrs != nil {
		select {
		case task, ok := <-tasks:
			if !ok {
				tasks = nil
				continue
			}
			if r.aborted {
				continue // drain
			}
			if procErr := r.process(task); procErr != nil {
				r.fail(task.RelPath, procErr)
				if !cfg.KeepGoing {
					r.aborted = true
					cancel()
				}
			}
		case walkErr, ok := <-walkErrs:
			if !ok {
				walkErrs = nil
				continue
			}
			if r.aborted {
				continue
			}
			r.fail("", walkErr)
			if !cfg.KeepGoing {
				r.aborted = true
				cancel()
			}
		}
	}

	runErr := r.firstErr
	if r.errCount > 1 {
		runErr = fmt.Errorf("%w (and %d more errors)", r.firstErr, r.errCount-1)
	}
	if runErr == nil && ctx.Err() != nil {
		runErr = ctx.Err()
	}

	r.emit(event.Event{Type: event.RunCompleted})
	return Result{Stats: collector.Snapshot(), Err: runErr}
}

// run holds the per-run mutable state owned by the executor.
type run struct {
	cfg      Config
	stats    *stats.Collector
	firstErr error
	errCount int
	aborted  bool
}

func (r *run) process(task Task) error {
	switch task.Type {
	case Dir:
		return r.processDir(task)
	case File:
		return r.processFile(task)
	default:
		return fmt.Errorf("unknown task type %d for %s", task.Type, task.SrcPath)
	}
}

func (r *run) processDir(task Task) error {
	if r.cfg.DryRun {
		return nil
	}

	if _, err := os.Stat(task.DstPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", task.DstPath, err)
	}

	// Ancestors normally exist already because directories arrive in
	// walk order; MkdirAll keeps creation idempotent regardless.
	if err := os.MkdirAll(task.DstPath, task.Mode.Perm()); err != nil {
		return fmt.Errorf("mkdir %s: %w", task.DstPath, err)
	}
	if err := copyTimes(task.SrcPath, task.DstPath); err != nil {
		return err
	}

	r.stats.AddDirsCreated(1)
	r.emit(event.Event{Type: event.DirCreated, Path: task.RelPath})
	return nil
}

func (r *run) processFile(task Task) error {
	r.stats.AddFilesSeen(1)

	// Excluded files are counted as seen but never written.
	if r.cfg.Excludes.Excluded(task.RelPath) {
		r.stats.AddFilesExcluded(1)
		r.emit(event.Event{Type: event.FileExcluded, Path: task.RelPath})
		return nil
	}

	need, err := r.needsCopy(task)
	if err != nil {
		return err
	}
	if !need {
		r.stats.AddFilesUnchanged(1)
		r.emit(event.Event{Type: event.FileUnchanged, Path: task.RelPath})
		return nil
	}

	if r.cfg.DryRun {
		r.stats.AddFilesCopied(1)
		r.emit(event.Event{Type: event.FileCopied, Path: task.RelPath, Size: task.Size})
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(task.DstPath), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", task.DstPath, err)
	}

	written, err := copyFile(task.SrcPath, task.DstPath, r.cfg.BlockSize)
	if err != nil {
		return err
	}

	r.stats.AddFilesCopied(1)
	r.stats.AddBytesCopied(written)
	r.emit(event.Event{Type: event.FileCopied, Path: task.RelPath, Size: written})
	return nil
}

// needsCopy applies the decision rule: copy when the destination is
// missing or its content digest differs from the source's. The
// comparison is digest-based, never timestamp-based, so metadata-only
// changes on the source leave the destination untouched.
func (r *run) needsCopy(task Task) (bool, error) {
	if _, err := os.Stat(task.DstPath); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", task.DstPath, err)
	}

	dstDigest, err := digest.File(task.DstPath, r.cfg.Algorithm)
	if err != nil {
		return false, err
	}
	srcDigest, err := digest.File(task.SrcPath, r.cfg.Algorithm)
	if err != nil {
		return false, err
	}
	return dstDigest != srcDigest, nil
}

func (r *run) fail(relPath string, err error) {
	r.stats.AddFilesFailed(1)
	r.emit(event.Event{Type: event.FileFailed, Path: relPath, Error: err})
	r.errCount++
	if r.firstErr == nil {
		r.firstErr = err
	}
}

func (r *run) emit(e event.Event) {
	if r.cfg.Events == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case r.cfg.Events <- e:
	default:
	}
}
