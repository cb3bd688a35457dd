// Package exportcmd runs a project's build-values export tasks.
//
// Tasks run concurrently up to a worker limit. Writes that share a
// destination are serialized, and each run is tagged with a unique id for
// log correlation.
package exportcmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/gantryci/gantry/pkg/buildvalues"
	"github.com/gantryci/gantry/pkg/projectcfg"
	"github.com/gantryci/gantry/pkg/syncs"
	"github.com/gantryci/gantry/pkg/tracing"
)

// DefaultTimeout bounds a whole run unless [WithTimeout] overrides it.
const DefaultTimeout = 5 * time.Minute

// Runner executes a project's export tasks.
type Runner struct {
	project     *projectcfg.Project
	exporter    *buildvalues.Exporter
	locks       syncs.KeyLocker
	tracer      tracing.Tracer
	subs        []func(any)
	overrides   []Override
	escapes     []string
	artifactDir string
	workspace   string
	runID       string
	timeout     time.Duration
	maxWorkers  int64
}

// RunnerOpt configures a [Runner].
type RunnerOpt func(*Runner)

// WithTimeout sets the timeout for a whole run.
func WithTimeout(d time.Duration) RunnerOpt {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithArtifactDir sets the directory that relative task destinations are
// resolved against. Defaults to the current working directory.
func WithArtifactDir(dir string) RunnerOpt {
	return func(r *Runner) {
		r.artifactDir = dir
	}
}

// WithWorkspaceRoot sets the directory that artifact destinations must stay
// inside. Defaults to the current working directory.
func WithWorkspaceRoot(dir string) RunnerOpt {
	return func(r *Runner) {
		r.workspace = dir
	}
}

// WithExporter sets the [buildvalues.Exporter] used to persist artifacts.
func WithExporter(e *buildvalues.Exporter) RunnerOpt {
	return func(r *Runner) {
		r.exporter = e
	}
}

// WithMaxWorkers caps concurrent export tasks. Values below one reset the
// cap to [runtime.GOMAXPROCS].
func WithMaxWorkers(n int) RunnerOpt {
	return func(r *Runner) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}

		r.maxWorkers = int64(n)
	}
}

// WithOverrides injects run-scoped value overrides applied to every task.
func WithOverrides(overrides ...Override) RunnerOpt {
	return func(r *Runner) {
		r.overrides = append(r.overrides, overrides...)
	}
}

// WithEscapes forces entity-escaped serialization for the named values in
// every task.
func WithEscapes(names ...string) RunnerOpt {
	return func(r *Runner) {
		r.escapes = append(r.escapes, names...)
	}
}

// WithTracer sets the [tracing.Tracer] timing the run and its tasks.
// Defaults to a [tracing.LoggingTracer] on the default logger.
func WithTracer(t tracing.Tracer) RunnerOpt {
	return func(r *Runner) {
		r.tracer = t
	}
}

// NewRunner creates a [Runner] for the given project.
func NewRunner(project *projectcfg.Project, opts ...RunnerOpt) (*Runner, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	r := &Runner{
		project:     project,
		exporter:    buildvalues.DefaultExporter,
		locks:       syncs.NewKeyLock(),
		tracer:      tracing.NewLoggingTracer(slog.Default()),
		artifactDir: wd,
		workspace:   wd,
		runID:       uuid.NewString(),
		timeout:     DefaultTimeout,
		maxWorkers:  int64(runtime.GOMAXPROCS(0)),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.artifactDir, err = filepath.Abs(r.artifactDir)
	if err != nil {
		return nil, fmt.Errorf("resolve artifact directory: %w", err)
	}

	r.workspace, err = filepath.Abs(r.workspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}

	return r, nil
}

// RunID returns the unique id tagged onto this runner's log records.
func (r *Runner) RunID() string {
	return r.runID
}

// Subscribe registers a callback receiving run events. Callbacks may be
// invoked concurrently from worker goroutines.
func (r *Runner) Subscribe(f func(any)) {
	r.subs = append(r.subs, f)
}

func (r *Runner) broadcastEvent(evt any) {
	for _, f := range r.subs {
		f(evt)
	}
}
