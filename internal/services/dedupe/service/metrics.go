package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"lookalike/internal/platform/metrics"
)

// collectors holds the dedupe metrics; a nil *collectors records nothing
type collectors struct {
	checks        *prometheus.CounterVec
	checkSeconds  prometheus.Histogram
	analyzeRuns   *prometheus.CounterVec
	analyzeSecs   prometheus.Histogram
	lastClusters  prometheus.Gauge
	merged        prometheus.Counter
	mergeFailures prometheus.Counter
}

func newCollectors(reg *metrics.Registry) *collectors {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg.Registerer())
	return &collectors{
		checks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace, Subsystem: "dedupe", Name: "checks_total",
			Help: "Interactive duplicate checks by outcome.",
		}, []string{"status"}),
		checkSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metrics.Namespace, Subsystem: "dedupe", Name: "check_duration_seconds",
			Help:    "Time spent matching one record, debounce excluded.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		analyzeRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace, Subsystem: "dedupe", Name: "analyze_runs_total",
			Help: "Bulk analysis runs by outcome.",
		}, []string{"status"}),
		analyzeSecs: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metrics.Namespace, Subsystem: "dedupe", Name: "analyze_duration_seconds",
			Help:    "Bulk analysis wall time.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		lastClusters: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace, Subsystem: "dedupe", Name: "last_run_clusters",
			Help: "Clusters found by the latest bulk analysis.",
		}),
		merged: f.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace, Subsystem: "dedupe", Name: "merged_records_total",
			Help: "Records soft deleted by merges.",
		}),
		mergeFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace, Subsystem: "dedupe", Name: "merge_failures_total",
			Help: "Merges that did not commit.",
		}),
	}
}

func (c *collectors) check(status string, d time.Duration) {
	if c == nil {
		return
	}
	c.checks.WithLabelValues(status).Inc()
	if status == "ok" {
		c.checkSeconds.Observe(d.Seconds())
	}
}

func (c *collectors) analyze(status string, d time.Duration, clusters int) {
	if c == nil {
		return
	}
	c.analyzeRuns.WithLabelValues(status).Inc()
	if status == "busy" {
		return
	}
	c.analyzeSecs.Observe(d.Seconds())
	if status == "ok" {
		c.lastClusters.Set(float64(clusters))
	}
}

func (c *collectors) merge(n int64, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.mergeFailures.Inc()
		return
	}
	c.merged.Add(float64(n))
}
