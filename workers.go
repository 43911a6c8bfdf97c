package mdrender

import "runtime"

// Worker count bounds for batch rendering.
const (
	MinWorkers = 1
	MaxWorkers = 16
)

// ResolveWorkers returns workers when positive, otherwise GOMAXPROCS
// clamped to [MinWorkers, MaxWorkers].
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
