package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	references    *prom.CounterVec
	probeDuration *prom.HistogramVec
	runDuration   prom.Histogram
	filesChecked  prom.Gauge
	runOutcome    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.references = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refcheck",
			Name:      "references_total",
			Help:      "References checked by kind and result",
		}, []string{"kind", "result"})
		pr.probeDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "refcheck",
			Name:      "probe_duration_seconds",
			Help:      "Duration of remote existence probes",
			Buckets:   prom.DefBuckets,
		}, []string{"result"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "refcheck",
			Name:      "run_duration_seconds",
			Help:      "Total check run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.filesChecked = prom.NewGauge(prom.GaugeOpts{
			Namespace: "refcheck",
			Name:      "files_checked",
			Help:      "Markdown files checked in the last run",
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refcheck",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		reg.MustRegister(pr.references, pr.probeDuration, pr.runDuration, pr.filesChecked, pr.runOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) IncReference(kind string, result ResultLabel) {
	if p == nil || p.references == nil {
		return
	}
	p.references.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveProbeDuration(d time.Duration, reachable bool) {
	if p == nil || p.probeDuration == nil {
		return
	}
	res := "unreachable"
	if reachable {
		res = "reachable"
	}
	p.probeDuration.WithLabelValues(res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetFilesChecked(n int) {
	if p == nil || p.filesChecked == nil {
		return
	}
	p.filesChecked.Set(float64(n))
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}
