package mdrender

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/qblog/go-mdrender/internal/metrics"
)

// NewPrometheusRecorder registers the rendering collectors on reg and
// returns a Recorder feeding them.
func NewPrometheusRecorder(reg prometheus.Registerer) Recorder {
	return metrics.NewPrometheusRecorder(reg)
}
