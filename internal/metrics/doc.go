// Package metrics defines the observability hooks of the renderer and a
// Prometheus implementation. The library defaults to NoopRecorder; callers
// that want numbers inject a PrometheusRecorder bound to their registry.
package metrics
