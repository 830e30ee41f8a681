package profile

// Tag is the build tag required to enable profiling.
const Tag = "pprof"

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // One of [Modes]; empty disables profiling
	Dir   string // Output directory; empty uses the working directory
	Quiet bool   // Suppress the profiler's own log messages
}

// Start begins profiling. It returns a no-op Stopper when Mode is empty or
// unsupported, or when built without [Tag]. Stop is always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
