package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// fetch-normalize-serve pipeline.
type Metrics struct {
	RefreshTotal    prometheus.Counter
	RefreshErrors   prometheus.Counter
	RefreshDuration prometheus.Histogram
	PipelineRunning prometheus.Gauge

	// Current dataset shape.
	DatasetRows      prometheus.Gauge
	DatasetSeries    prometheus.Gauge
	DatasetLocations prometheus.Gauge

	// BLS API fetch metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram
	FetchCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Kafka export metrics.
	RowsExported prometheus.Counter
	ExportErrors prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RefreshTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bls_etl",
			Name:      "refresh_total",
			Help:      "Total dataset refresh attempts.",
		}),
		RefreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bls_etl",
			Name:      "refresh_errors_total",
			Help:      "Total refresh attempts that failed.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bls_etl",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-merge-normalize-resolve cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bls_etl",
			Name:      "pipeline_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bls_etl",
			Name:      "dataset_rows",
			Help:      "Rows in the current canonical table.",
		}),
		DatasetSeries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bls_etl",
			Name:      "dataset_series",
			Help:      "Value columns in the current canonical table.",
		}),
		DatasetLocations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bls_etl",
			Name:      "dataset_locations",
			Help:      "Series identifiers with a resolved geography name.",
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bls_etl",
			Name:      "fetch_requests_total",
			Help:      "BLS API requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bls_etl",
			Name:      "fetch_duration_seconds",
			Help:      "BLS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FetchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bls_etl",
			Name:      "fetch_cache_total",
			Help:      "Fetch cache lookups by result.",
		}, []string{"result"}),
		RowsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bls_etl",
			Name:      "rows_exported_total",
			Help:      "Canonical rows published to the sink topic.",
		}),
		ExportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bls_etl",
			Name:      "export_errors_total",
			Help:      "Failed sink publishes.",
		}),
	}

	prometheus.MustRegister(
		m.RefreshTotal,
		m.RefreshErrors,
		m.RefreshDuration,
		m.PipelineRunning,
		m.DatasetRows,
		m.DatasetSeries,
		m.DatasetLocations,
		m.FetchRequests,
		m.FetchDuration,
		m.FetchCache,
		m.RowsExported,
		m.ExportErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RefreshTotal:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bls_etl", Name: "refresh_total"}),
		RefreshErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bls_etl", Name: "refresh_errors_total"}),
		RefreshDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bls_etl", Name: "refresh_duration_seconds"}),
		PipelineRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bls_etl", Name: "pipeline_running"}),
		DatasetRows:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bls_etl", Name: "dataset_rows"}),
		DatasetSeries:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bls_etl", Name: "dataset_series"}),
		DatasetLocations: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bls_etl", Name: "dataset_locations"}),
		FetchRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "bls_etl", Name: "fetch_requests_total"}, []string{"outcome"}),
		FetchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bls_etl", Name: "fetch_duration_seconds"}),
		FetchCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "bls_etl", Name: "fetch_cache_total"}, []string{"result"}),
		RowsExported:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bls_etl", Name: "rows_exported_total"}),
		ExportErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bls_etl", Name: "export_errors_total"}),
	}
}
