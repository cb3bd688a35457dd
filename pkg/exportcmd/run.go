package exportcmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/gantryci/gantry/pkg/paths"
	"github.com/gantryci/gantry/pkg/projectcfg"
)

var (
	// ErrTaskNotFound indicates a requested task is not declared by the
	// project.
	ErrTaskNotFound = errors.New("export task not found")

	// ErrWorkerFailed indicates the run stopped before every worker was
	// scheduled and drained, usually because the context ended.
	ErrWorkerFailed = errors.New("export worker failed")

	// ErrExportFailed wraps task failures collected at the end of a run.
	ErrExportFailed = errors.New("export failed")
)

type target struct {
	task projectcfg.ExportTask
	path paths.ResolvedPath
}

// Run exports the named tasks, or every project task when names is empty.
// Tasks run concurrently; failures do not stop other tasks and are reported
// together once the run drains. When the context ends first, Run returns the
// context error without waiting for in-flight tasks.
func (r *Runner) Run(ctx context.Context, names ...string) error {
	err := r.run(ctx, names)
	r.broadcastEvent(EventDone{Err: err})

	return err
}

func (r *Runner) run(ctx context.Context, names []string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger := slog.With(
		slog.String("run_id", r.runID),
		slog.String("project", r.project.Name),
	)

	span := r.tracer.StartSpan("export_run")
	span.SetAttribute("run_id", r.runID)
	defer span.Finish()

	if err := r.project.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	tasks, err := r.selectTasks(names)
	if err != nil {
		return err
	}

	targets, err := r.resolveTargets(tasks)
	if err != nil {
		return err
	}

	r.broadcastEvent(EventSetTaskTotal(len(targets)))

	sem := semaphore.NewWeighted(r.maxWorkers)
	errChan := make(chan error, len(targets))

	for _, tgt := range targets {
		tgt := tgt

		if err := sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("%w: %w", ErrWorkerFailed, err)
		}

		r.broadcastEvent(EventExportingTask(tgt.task.Name))

		go func() {
			defer sem.Release(1)

			err := r.exportTask(logger, tgt)
			r.broadcastEvent(EventExportedTask{Task: tgt.task.Name, Path: tgt.path.String(), Err: err})

			if err != nil {
				errChan <- fmt.Errorf("task %q: %w", tgt.task.Name, err)
			}
		}()
	}

	// Wait for all workers to complete. On a failed acquire the channel
	// stays open; workers still in flight send into its buffer.
	if err := sem.Acquire(ctx, r.maxWorkers); err != nil {
		return fmt.Errorf("%w: %w", ErrWorkerFailed, err)
	}

	close(errChan)

	var merr *multierror.Error
	for err := range errChan {
		merr = multierror.Append(merr, err)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	logger.Info("exported build values", slog.Int("tasks", len(targets)))

	return nil
}

// selectTasks maps requested names onto project tasks, defaulting to every
// task in document order.
func (r *Runner) selectTasks(names []string) ([]projectcfg.ExportTask, error) {
	if len(names) == 0 {
		return r.project.Exports, nil
	}

	tasks := make([]projectcfg.ExportTask, 0, len(names))

	for _, name := range names {
		task, ok := r.project.Task(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, name)
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

// resolveTargets resolves every destination before any worker starts, so a
// misconfigured task fails the run without writing anything.
func (r *Runner) resolveTargets(tasks []projectcfg.ExportTask) ([]target, error) {
	targets := make([]target, 0, len(tasks))

	for _, task := range tasks {
		p, err := paths.ResolveArtifactPath(r.artifactDir, r.workspace, task.FileName())
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", task.Name, err)
		}

		targets = append(targets, target{task: task, path: p})
	}

	return targets, nil
}

func (r *Runner) exportTask(logger *slog.Logger, tgt target) error {
	values := ApplyOverrides(tgt.task.Values, r.overrides)
	values = ApplyEscapes(values, r.escapes)

	path := tgt.path.String()

	// The span covers lock wait, so destination contention shows up in
	// task timings.
	span := r.tracer.StartSpan("export_task")
	span.SetAttribute("task", tgt.task.Name)
	span.SetAttribute("path", path)
	defer span.Finish()

	// Tasks sharing a destination write one at a time.
	r.locks.Lock(path)
	defer r.locks.Unlock(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	logger.Debug("exporting build values",
		slog.String("task", tgt.task.Name),
		slog.String("path", path),
		slog.Int("values", len(values)),
	)

	if tgt.task.Compress {
		return r.exporter.WriteCompressed(values, path)
	}

	return r.exporter.Write(values, path)
}
