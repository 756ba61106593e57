package runner

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/basilforge/lispfmt/internal/logging"
	"github.com/basilforge/lispfmt/pkg/engine"
	"github.com/basilforge/lispfmt/pkg/fsutil"
)

// Runner orchestrates multi-file checking and fixing.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := processFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile runs the configured engine operation over a single file
// and, in ModeFix, writes the result back (unless DryRun is set). Any
// failure is logged through the context's logger, scoped to path, with
// fields specific to the engine error's concrete type before being
// attached to the outcome for the caller to aggregate.
func processFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	ctx = logging.WithFile(ctx, path)
	logger := logging.FromContext(ctx)

	source, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		logger.Error("read failed", logging.FieldError, err)
		return outcome
	}

	switch opts.Mode {
	case ModeFix:
		fixed, err := engine.FixSource(ctx, source, opts.Config)
		if err != nil {
			outcome.Error = fmt.Errorf("fix %s: %w", path, err)
			logging.LogEngineError(logger, path, err)
			return outcome
		}

		outcome.Changed = !bytes.Equal(source, fixed)

		violations, err := engine.CheckSource(ctx, fixed, opts.Config)
		if err != nil {
			outcome.Error = fmt.Errorf("recheck %s: %w", path, err)
			logging.LogEngineError(logger, path, err)
			return outcome
		}
		outcome.Violations = violations

		if outcome.Changed && !opts.DryRun {
			// The fix loop can iterate for a while on large files; guard
			// against writing over a file someone else edited meanwhile.
			modified, err := fsutil.CheckModified(ctx, info)
			if err != nil {
				outcome.Error = fmt.Errorf("check modified %s: %w", path, err)
				logger.Error("modification check failed", logging.FieldError, err)
				return outcome
			}
			if modified {
				outcome.Error = fmt.Errorf("%w: %s", fsutil.ErrConcurrentModification, path)
				logger.Error("concurrent modification detected", logging.FieldPath, path)
				return outcome
			}

			if opts.Config.Backups.Enabled {
				backedUp, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{
					Enabled: true,
					Mode:    fsutil.BackupModeSidecar,
				})
				if err != nil {
					outcome.Error = fmt.Errorf("backup %s: %w", path, err)
					logger.Error("backup failed", logging.FieldError, err)
					return outcome
				}
				outcome.BackedUp = backedUp
			}

			mode := info.Mode
			if mode == 0 {
				mode = fsutil.DefaultFileMode
			}
			if err := fsutil.WriteAtomic(ctx, path, fixed, mode); err != nil {
				outcome.Error = fmt.Errorf("write %s: %w", path, err)
				logger.Error("write failed", logging.FieldError, err)
				return outcome
			}
			outcome.Written = true
		}

	default:
		violations, err := engine.CheckSource(ctx, source, opts.Config)
		if err != nil {
			outcome.Error = fmt.Errorf("check %s: %w", path, err)
			logging.LogEngineError(logger, path, err)
			return outcome
		}
		outcome.Violations = violations
	}

	return outcome
}
