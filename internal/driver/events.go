package driver

import "time"

// Status reports what happened to a file or phase.
type Status int

const (
	// StatusQueued indicates the file was accepted into the build.
	StatusQueued Status = iota
	StatusWorking
	StatusCached
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusCached:
		return "cached"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "status(?)"
	}
}

// Event describes progress of one file. Stage is the phase name
// ("parse", "generate vertex", "layouts", "write") or empty for the file
// as a whole.
type Event struct {
	File    string
	Stage   string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives build events. OnEvent is called from worker
// goroutines and must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

// OnEvent implements ProgressSink.
func (f SinkFunc) OnEvent(ev Event) { f(ev) }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
