package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// CacheLabel tells whether a renderer lookup was served from the cache.
type CacheLabel string

const (
	CacheHit  CacheLabel = "hit"
	CacheMiss CacheLabel = "miss"
)

// Recorder defines observability hooks for rendering. Implementations must
// be safe for concurrent use.
type Recorder interface {
	ObserveRender(variant string, d time.Duration)
	IncRendererCache(result CacheLabel)
	IncDiagram(result ResultLabel)
	IncCopy(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRender(string, time.Duration) {}
func (NoopRecorder) IncRendererCache(CacheLabel)         {}
func (NoopRecorder) IncDiagram(ResultLabel)              {}
func (NoopRecorder) IncCopy(ResultLabel)                 {}

// Result maps an outcome to its label.
func Result(ok bool) ResultLabel {
	if ok {
		return ResultSuccess
	}
	return ResultFailed
}
