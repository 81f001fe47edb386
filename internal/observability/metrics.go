package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the directory host.
type Metrics struct {
	RecordsLoaded     prometheus.Gauge
	StoreAvailable    prometheus.Gauge
	StoreLoadFailures prometheus.Counter
	StoreLoadDuration prometheus.Histogram
	FieldDefects      prometheus.Counter

	// Data endpoint metrics.
	DataRequests *prometheus.CounterVec // labels: outcome={served,not_found,unavailable}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsLoaded,
		m.StoreAvailable,
		m.StoreLoadFailures,
		m.StoreLoadDuration,
		m.FieldDefects,
		m.DataRequests,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shelter_directory",
			Name:      "records_loaded",
			Help:      "Facility records held by the record store.",
		}),
		StoreAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shelter_directory",
			Name:      "store_available",
			Help:      "1 when the record collection loaded, 0 when it failed.",
		}),
		StoreLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shelter_directory",
			Name:      "store_load_failures_total",
			Help:      "Record collection loads that failed to fetch or decode.",
		}),
		StoreLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shelter_directory",
			Name:      "store_load_duration_seconds",
			Help:      "Duration of fetching and decoding the record collection.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		FieldDefects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shelter_directory",
			Name:      "field_defects_total",
			Help:      "Per-field defects tolerated while decoding records.",
		}),
		DataRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelter_directory",
			Name:      "data_requests_total",
			Help:      "Requests for the serialized record collection by outcome.",
		}, []string{"outcome"}),
	}
}

// StoreResult is the part of a loaded store the metrics need.
type StoreResult interface {
	Len() int
	Err() error
	DefectCount() int
	LoadSeconds() float64
}

// ObserveLoad records the outcome of a record store load.
func (m *Metrics) ObserveLoad(r StoreResult) {
	m.StoreLoadDuration.Observe(r.LoadSeconds())
	m.FieldDefects.Add(float64(r.DefectCount()))
	if r.Err() != nil {
		m.StoreLoadFailures.Inc()
		m.StoreAvailable.Set(0)
		m.RecordsLoaded.Set(0)
		return
	}
	m.StoreAvailable.Set(1)
	m.RecordsLoaded.Set(float64(r.Len()))
}
