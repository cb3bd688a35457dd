package commands

// RootArgs holds persistent flag values shared by every command.
type RootArgs struct {
	logLevel         *string
	logFormat        *string
	cpuProfile       *string
	heapProfile      *string
	memProfile       *string
	memProfileRate   *int
	blockProfile     *string
	blockProfileRate *int
	mutexProfile     *string
	mutexProfileRate *int
}

// NewRootArgs creates a [RootArgs] with allocated flag targets.
func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:         new(string),
		logFormat:        new(string),
		cpuProfile:       new(string),
		heapProfile:      new(string),
		memProfile:       new(string),
		memProfileRate:   new(int),
		blockProfile:     new(string),
		blockProfileRate: new(int),
		mutexProfile:     new(string),
		mutexProfileRate: new(int),
	}
}

// GetLogLevel returns the configured log level.
func (a *RootArgs) GetLogLevel() string {
	if a == nil || a.logLevel == nil {
		return ""
	}

	return *a.logLevel
}

// GetLogFormat returns the configured log format.
func (a *RootArgs) GetLogFormat() string {
	if a == nil || a.logFormat == nil {
		return ""
	}

	return *a.logFormat
}

// GetCPUProfile returns the CPU profile destination, if any.
func (a *RootArgs) GetCPUProfile() string {
	if a == nil || a.cpuProfile == nil {
		return ""
	}

	return *a.cpuProfile
}

// GetHeapProfile returns the heap profile destination, if any.
func (a *RootArgs) GetHeapProfile() string {
	if a == nil || a.heapProfile == nil {
		return ""
	}

	return *a.heapProfile
}

// GetMemProfile returns the allocation profile destination, if any.
func (a *RootArgs) GetMemProfile() string {
	if a == nil || a.memProfile == nil {
		return ""
	}

	return *a.memProfile
}

// GetMemProfileRate returns the memory profiling sample rate.
func (a *RootArgs) GetMemProfileRate() int {
	if a == nil || a.memProfileRate == nil {
		return 0
	}

	return *a.memProfileRate
}

// GetBlockProfile returns the block profile destination, if any.
func (a *RootArgs) GetBlockProfile() string {
	if a == nil || a.blockProfile == nil {
		return ""
	}

	return *a.blockProfile
}

// GetBlockProfileRate returns the block profiling rate.
func (a *RootArgs) GetBlockProfileRate() int {
	if a == nil || a.blockProfileRate == nil {
		return 0
	}

	return *a.blockProfileRate
}

// GetMutexProfile returns the mutex profile destination, if any.
func (a *RootArgs) GetMutexProfile() string {
	if a == nil || a.mutexProfile == nil {
		return ""
	}

	return *a.mutexProfile
}

// GetMutexProfileRate returns the mutex profiling fraction.
func (a *RootArgs) GetMutexProfileRate() int {
	if a == nil || a.mutexProfileRate == nil {
		return 0
	}

	return *a.mutexProfileRate
}
