package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/gantryci/gantry/pkg/exportcmd"
	"github.com/gantryci/gantry/pkg/paths"
	"github.com/gantryci/gantry/pkg/projectcfg"
)

const (
	exportDesc = `Run the project's build-values export tasks.

Each task renders its name/value pairs into a standalone XML document and
writes it atomically below the artifact directory. Without task arguments,
every task declared by the project runs.`

	exportExample = `  # Export every task declared by ./gantry.xml
  gantry export

  # Export selected tasks into ./artifacts
  gantry export buildInfo releaseNotes -d artifacts

  # Inject a value for this run, entity-escaped instead of CDATA
  gantry export --set buildNumber=142 --escape buildNumber`
)

var ErrInvalidArgument = errors.New("invalid argument")

// ExportArgs holds flag values for the export command.
type ExportArgs struct {
	*RootArgs

	project     *string
	artifactDir *string
	sets        *[]string
	escapes     *[]string
	workers     *int
	timeout     *time.Duration
	quiet       *bool
}

// NewExportArgs creates an [ExportArgs] with allocated flag targets.
func NewExportArgs(rootArgs *RootArgs) *ExportArgs {
	return &ExportArgs{
		RootArgs:    rootArgs,
		project:     new(string),
		artifactDir: new(string),
		sets:        new([]string),
		escapes:     new([]string),
		workers:     new(int),
		timeout:     new(time.Duration),
		quiet:       new(bool),
	}
}

// GetProject returns the configured project file path.
func (a *ExportArgs) GetProject() string {
	if a == nil || a.project == nil {
		return ""
	}

	return *a.project
}

// GetArtifactDir returns the configured artifact directory.
func (a *ExportArgs) GetArtifactDir() string {
	if a == nil || a.artifactDir == nil {
		return ""
	}

	return *a.artifactDir
}

// GetSets returns the configured NAME=VALUE overrides.
func (a *ExportArgs) GetSets() []string {
	if a == nil || a.sets == nil {
		return nil
	}

	return *a.sets
}

// GetEscapes returns the names forced to entity-escaped serialization.
func (a *ExportArgs) GetEscapes() []string {
	if a == nil || a.escapes == nil {
		return nil
	}

	return *a.escapes
}

// GetWorkers returns the configured worker cap.
func (a *ExportArgs) GetWorkers() int {
	if a == nil || a.workers == nil {
		return 0
	}

	return *a.workers
}

// GetTimeout returns the configured run timeout.
func (a *ExportArgs) GetTimeout() time.Duration {
	if a == nil || a.timeout == nil {
		return 0
	}

	return *a.timeout
}

// GetQuiet reports whether progress output is suppressed.
func (a *ExportArgs) GetQuiet() bool {
	if a == nil || a.quiet == nil {
		return false
	}

	return *a.quiet
}

// NewExportCmd returns the export command.
func NewExportCmd(rootArgs *RootArgs) *cobra.Command {
	args := NewExportArgs(rootArgs)

	cmd := &cobra.Command{
		Use:     "export [task...]",
		Short:   "Export build values to XML artifacts",
		Long:    exportDesc,
		Example: exportExample,
		RunE: func(cc *cobra.Command, taskNames []string) error {
			return runExport(cc, args, taskNames)
		},
	}

	cmd.Flags().StringVarP(args.project, "project", "p", "",
		"Path to the project file (default: discover "+defaultProjectFile+")")
	cmd.Flags().StringVarP(args.artifactDir, "artifact-dir", "d", "",
		"Directory receiving artifacts (default: the project file's directory)")
	cmd.Flags().StringArrayVar(args.sets, "set", nil,
		"Set a value for this run (NAME=VALUE, repeatable)")
	cmd.Flags().StringArrayVar(args.escapes, "escape", nil,
		"Emit the named value entity-escaped instead of as CDATA (repeatable)")
	cmd.Flags().IntVar(args.workers, "workers", runtime.GOMAXPROCS(0),
		"Maximum concurrent export tasks")
	cmd.Flags().DurationVar(args.timeout, "timeout", exportcmd.DefaultTimeout,
		"Timeout for the whole run")
	cmd.Flags().BoolVarP(args.quiet, "quiet", "q", false,
		"Suppress progress output")

	err := cmd.MarkFlagFilename("project", "xml")
	if err != nil {
		panic(err)
	}

	err = cmd.MarkFlagDirname("artifact-dir")
	if err != nil {
		panic(err)
	}

	return cmd
}

func runExport(cc *cobra.Command, args *ExportArgs, taskNames []string) error {
	projectPath := args.GetProject()

	if projectPath == "" {
		var err error

		projectPath, err = discoverProjectFile()
		if err != nil {
			return err
		}
	}

	projectPath, err := filepath.Abs(projectPath)
	if err != nil {
		return fmt.Errorf("resolve project path: %w", err)
	}

	proj, err := projectcfg.Load(projectPath)
	if err != nil {
		return err
	}

	overrides := make([]exportcmd.Override, 0, len(args.GetSets()))

	for _, s := range args.GetSets() {
		ov, err := exportcmd.ParseOverride(s)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		overrides = append(overrides, ov)
	}

	projectDir := filepath.Dir(projectPath)

	workspace, err := paths.FindRepoRoot(projectDir)
	if err != nil {
		// Outside a git checkout the project directory bounds the run.
		workspace = projectDir
	}

	artifactDir := args.GetArtifactDir()
	if artifactDir == "" {
		artifactDir = projectDir
	}

	artifactDir, err = filepath.Abs(artifactDir)
	if err != nil {
		return fmt.Errorf("resolve artifact directory: %w", err)
	}

	// An explicit artifact directory outside the workspace bounds the run
	// itself.
	if !strings.HasPrefix(artifactDir+string(os.PathSeparator), workspace+string(os.PathSeparator)) {
		workspace = artifactDir
	}

	runner, err := exportcmd.NewRunner(proj,
		exportcmd.WithArtifactDir(artifactDir),
		exportcmd.WithWorkspaceRoot(workspace),
		exportcmd.WithMaxWorkers(args.GetWorkers()),
		exportcmd.WithTimeout(args.GetTimeout()),
		exportcmd.WithOverrides(overrides...),
		exportcmd.WithEscapes(args.GetEscapes()...),
	)
	if err != nil {
		return err
	}

	if !args.GetQuiet() {
		runner.Subscribe(newProgressPrinter(cc))
	}

	return runner.Run(cc.Context(), taskNames...)
}

// newProgressPrinter writes one line per run milestone to the command's
// stdout. Events arrive from concurrent workers, so writes are serialized.
func newProgressPrinter(cc *cobra.Command) func(any) {
	var mu sync.Mutex

	out := cc.OutOrStdout()

	return func(evt any) {
		mu.Lock()
		defer mu.Unlock()

		switch e := evt.(type) {
		case exportcmd.EventSetTaskTotal:
			fmt.Fprintf(out, "exporting %d tasks\n", int(e))
		case exportcmd.EventExportedTask:
			if e.Err == nil {
				fmt.Fprintf(out, "exported %q to %s\n", e.Task, e.Path)
			}
		case exportcmd.EventDone:
			if e.Err == nil {
				fmt.Fprintln(out, "done")
			}
		}
	}
}
