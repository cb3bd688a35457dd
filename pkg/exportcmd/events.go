package exportcmd

// Events broadcast to [Runner.Subscribe] callbacks during a run.
type (
	// EventSetTaskTotal reports the number of tasks selected for the run.
	EventSetTaskTotal int

	// EventExportingTask reports that the named task started exporting.
	EventExportingTask string

	// EventExportedTask reports a finished task.
	EventExportedTask struct {
		Err  error
		Task string
		Path string
	}

	// EventDone reports the end of the run.
	EventDone struct {
		Err error
	}
)
