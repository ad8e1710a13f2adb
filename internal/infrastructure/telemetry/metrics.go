// Package telemetry exposes Prometheus metrics for the label analysis pipeline.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "labellens"

// Metrics holds all pipeline Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal *prometheus.CounterVec
	OCRDuration   prometheus.Histogram
	OCRFailures   prometheus.Counter
	CacheLookups  *prometheus.CounterVec
	KeywordHits   *prometheus.CounterVec
}

// NewMetrics registers the pipeline metrics on a fresh registry, together with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Label analyses completed, by text source (OCR, Cache, Text)",
		}, []string{"source"}),
		OCRDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ocr_duration_seconds",
			Help:      "Time spent extracting text from an image",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		OCRFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_failures_total",
			Help:      "Text extractions that returned an error",
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Extracted-text cache lookups, by result (hit, miss, error)",
		}, []string{"result"}),
		KeywordHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keyword_hits_total",
			Help:      "Matched keywords, by category and keyword",
		}, []string{"category", "keyword"}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordAnalysis counts one finished analysis
func (m *Metrics) RecordAnalysis(source string) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(source).Inc()
}

// RecordOCR observes one extractor call
func (m *Metrics) RecordOCR(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.OCRDuration.Observe(d.Seconds())
	if err != nil {
		m.OCRFailures.Inc()
	}
}

// RecordCacheLookup counts a cache lookup; result is hit, miss or error
func (m *Metrics) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordKeywordHits counts each matched keyword of a category
func (m *Metrics) RecordKeywordHits(category string, keywords []string) {
	if m == nil {
		return
	}
	for _, kw := range keywords {
		m.KeywordHits.WithLabelValues(category, kw).Inc()
	}
}
