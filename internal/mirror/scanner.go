package mirror

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"
)

// scanner traverses the source tree in deterministic lexical order and
// emits one Task per directory and regular file. Traversal is pure:
// the scanner never touches the destination or the counters.
type scanner struct {
	srcRoot   string
	dstRoot   string
	keepGoing bool
	tasks     chan Task
	errs      chan error
}

func newScanner(srcRoot, dstRoot string, keepGoing bool) *scanner {
	return &scanner{
		srcRoot:   srcRoot,
		dstRoot:   dstRoot,
		keepGoing: keepGoing,
		tasks:     make(chan Task, 64),
		errs:      make(chan error, 64),
	}
}

// scan starts the traversal and returns channels for tasks and walk
// errors. Both channels close when the walk finishes or aborts.
func (s *scanner) scan(ctx context.Context) (<-chan Task, <-chan error) {
	go func() {
		defer close(s.tasks)
		defer close(s.errs)
		s.walk(ctx)
	}()
	return s.tasks, s.errs
}

func (s *scanner) walk(ctx context.Context) {
	err := filepath.WalkDir(s.srcRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if s.keepGoing {
				s.sendErr(fmt.Errorf("walk %s: %w", path, err))
				return nil
			}
			return fmt.Errorf("walk %s: %w", path, err)
		}

		relPath, err := filepath.Rel(s.srcRoot, path)
		if err != nil {
			return fmt.Errorf("rel path for %s: %w", path, err)
		}
		if relPath == "." {
			return nil // root is bootstrapped by the caller
		}

		// Symlinks, devices and other specials are not mirrored.
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if s.keepGoing {
				s.sendErr(fmt.Errorf("stat %s: %w", path, err))
				return nil
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}

		task := Task{
			SrcPath: path,
			DstPath: filepath.Join(s.dstRoot, relPath),
			RelPath: relPath,
			Type:    File,
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		}
		if d.IsDir() {
			task.Type = Dir
		}
		if stat, ok := info.Sys().(*syscall.Stat_t); ok {
			task.AccTime = atimeFromStat(stat)
		}

		select {
		case s.tasks <- task:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil && ctx.Err() == nil {
		s.sendErr(err)
	}
}

func (s *scanner) sendErr(err error) {
	select {
	case s.errs <- err:
	default:
	}
}
