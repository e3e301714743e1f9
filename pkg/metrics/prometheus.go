package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	reconcileDuration *prometheus.HistogramVec
	adapterErrors     *prometheus.CounterVec
	completeness      *prometheus.GaugeVec
	sectorUsage       *prometheus.CounterVec
	periodUsage       *prometheus.CounterVec
	cacheResults      *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		reconcileDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rvc_reconcile_duration_seconds",
				Help:    "Duration of full reconciliation runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"ticker"},
		),
		adapterErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rvc_adapter_errors_total",
				Help: "Source adapter failures, swallowed by the pipeline",
			},
			[]string{"source"},
		),
		completeness: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rvc_data_completeness_percent",
				Help: "Completeness score of the last reconciliation per ticker",
			},
			[]string{"ticker"},
		),
		sectorUsage: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rvc_sector_normalizations_total",
				Help: "Sector z-score normalizations by sector",
			},
			[]string{"sector"},
		),
		periodUsage: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rvc_period_normalizations_total",
				Help: "Period normalizations by winning period",
			},
			[]string{"period"},
		),
		cacheResults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rvc_cache_results_total",
				Help: "Cache lookups by store and result",
			},
			[]string{"store", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rvc_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordReconcile records the duration of one reconciliation run.
func (r *Recorder) RecordReconcile(ticker string, seconds float64) {
	r.reconcileDuration.WithLabelValues(ticker).Observe(seconds)
}

// RecordAdapterError records a swallowed source adapter failure.
func (r *Recorder) RecordAdapterError(source string) {
	r.adapterErrors.WithLabelValues(source).Inc()
}

// RecordCompleteness records the completeness score for a ticker.
func (r *Recorder) RecordCompleteness(ticker string, pct float64) {
	r.completeness.WithLabelValues(ticker).Set(pct)
}

// RecordSectorUsage records one sector z-score normalization.
func (r *Recorder) RecordSectorUsage(sector string) {
	r.sectorUsage.WithLabelValues(sector).Inc()
}

// RecordPeriodUsage records which period won a normalization.
func (r *Recorder) RecordPeriodUsage(period string) {
	r.periodUsage.WithLabelValues(period).Inc()
}

// RecordCacheResult records a cache hit or miss for a named store.
func (r *Recorder) RecordCacheResult(store string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheResults.WithLabelValues(store, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
