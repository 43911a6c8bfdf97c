package metrics

import (
	"sort"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdrender"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	renderDuration *prom.HistogramVec
	rendererCache  *prom.CounterVec
	diagrams       *prom.CounterVec
	copies         *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of Markdown render passes",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"variant"}),
		rendererCache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "renderer_cache_total",
			Help:      "Renderer lookups by cache result",
		}, []string{"result"}),
		diagrams: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "diagram_results_total",
			Help:      "Diagram fences by encoding result",
		}, []string{"result"}),
		copies: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "copy_results_total",
			Help:      "Clipboard writes by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.renderDuration, pr.rendererCache, pr.diagrams, pr.copies)
	return pr
}

func (p *PrometheusRecorder) ObserveRender(variant string, d time.Duration) {
	if p == nil || p.renderDuration == nil {
		return
	}
	p.renderDuration.WithLabelValues(variant).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRendererCache(result CacheLabel) {
	if p == nil || p.rendererCache == nil {
		return
	}
	p.rendererCache.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncDiagram(result ResultLabel) {
	if p == nil || p.diagrams == nil {
		return
	}
	p.diagrams.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncCopy(result ResultLabel) {
	if p == nil || p.copies == nil {
		return
	}
	p.copies.WithLabelValues(string(result)).Inc()
}

// Sample is one gathered series, flattened for display.
type Sample struct {
	Name  string // metric{label="value",...}
	Value float64
}

// Snapshot gathers g and flattens counters and histogram counts into
// samples sorted by name.
func Snapshot(g prom.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var b strings.Builder
			b.WriteString(mf.GetName())
			if labels := m.GetLabel(); len(labels) > 0 {
				b.WriteByte('{')
				for i, l := range labels {
					if i > 0 {
						b.WriteByte(',')
					}
					b.WriteString(l.GetName() + `="` + l.GetValue() + `"`)
				}
				b.WriteByte('}')
			}

			switch {
			case m.GetCounter() != nil:
				out = append(out, Sample{Name: b.String(), Value: m.GetCounter().GetValue()})
			case m.GetHistogram() != nil:
				out = append(out, Sample{Name: b.String() + "_count", Value: float64(m.GetHistogram().GetSampleCount())})
			case m.GetGauge() != nil:
				out = append(out, Sample{Name: b.String(), Value: m.GetGauge().GetValue()})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
