package commands

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// profileSink pairs a runtime profile with its output destination.
type profileSink struct {
	profile *pprof.Profile
	path    string
}

func (s profileSink) write() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s profile: %w", s.profile.Name(), err)
	}

	if err := s.profile.WriteTo(f, 0); err != nil {
		_ = f.Close()

		return fmt.Errorf("write %s profile: %w", s.profile.Name(), err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s profile: %w", s.profile.Name(), err)
	}

	return nil
}

// profiler collects the runtime profiles requested on the command line.
// Profiles start before the command runs and are written after it returns.
type profiler struct {
	cpuFile *os.File
	sinks   []profileSink
}

func (p *profiler) start(args *RootArgs) error {
	if path := args.GetCPUProfile(); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}

		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()

			return fmt.Errorf("start cpu profile: %w", err)
		}

		p.cpuFile = f
	}

	if args.GetHeapProfile() != "" || args.GetMemProfile() != "" {
		runtime.MemProfileRate = args.GetMemProfileRate()
	}

	if path := args.GetHeapProfile(); path != "" {
		p.sinks = append(p.sinks, profileSink{profile: pprof.Lookup("heap"), path: path})
	}

	if path := args.GetMemProfile(); path != "" {
		p.sinks = append(p.sinks, profileSink{profile: pprof.Lookup("allocs"), path: path})
	}

	if path := args.GetBlockProfile(); path != "" {
		runtime.SetBlockProfileRate(args.GetBlockProfileRate())

		p.sinks = append(p.sinks, profileSink{profile: pprof.Lookup("block"), path: path})
	}

	if path := args.GetMutexProfile(); path != "" {
		runtime.SetMutexProfileFraction(args.GetMutexProfileRate())

		p.sinks = append(p.sinks, profileSink{profile: pprof.Lookup("mutex"), path: path})
	}

	return nil
}

func (p *profiler) stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		if err := p.cpuFile.Close(); err != nil {
			return fmt.Errorf("close cpu profile: %w", err)
		}

		p.cpuFile = nil
	}

	if len(p.sinks) == 0 {
		return nil
	}

	runtime.GC() //nolint:revive // Get up-to-date statistics for the profiles.

	for _, sink := range p.sinks {
		if err := sink.write(); err != nil {
			return err
		}
	}

	p.sinks = nil

	return nil
}
