package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// pipeline run. The process is batch-shaped, so metrics live on a private
// registry and are exported through the node_exporter textfile collector
// rather than a scrape endpoint.
type Metrics struct {
	registry *prometheus.Registry

	APIRequests        *prometheus.CounterVec   // labels: endpoint={points,hourly,daily}, outcome={success,error}
	APIRequestDuration *prometheus.HistogramVec // labels: endpoint

	PeriodsAggregated *prometheus.CounterVec // labels: granularity={hourly,daily}
	EventsPublished   prometheus.Gauge

	RunDuration prometheus.Gauge
	RunSuccess  prometheus.Gauge // 1 on success, 0 on failure
	LastRunTime prometheus.Gauge // unix seconds
}

// NewMetrics creates all run metrics on a fresh registry. A private registry
// keeps repeated construction in tests panic-free and gives the textfile
// writer a single gatherer.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "noaa2ical",
			Name:      "api_requests_total",
			Help:      "NWS API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "noaa2ical",
			Name:      "api_request_duration_seconds",
			Help:      "NWS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		PeriodsAggregated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "noaa2ical",
			Name:      "periods_aggregated_total",
			Help:      "Forecast periods folded into daily summaries, by granularity.",
		}, []string{"granularity"}),
		EventsPublished: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "noaa2ical",
			Name:      "events_published",
			Help:      "Calendar events written in the last run.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "noaa2ical",
			Name:      "run_duration_seconds",
			Help:      "Duration of the last pipeline run.",
		}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "noaa2ical",
			Name:      "run_success",
			Help:      "1 if the last run published a calendar, 0 otherwise.",
		}),
		LastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "noaa2ical",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix timestamp of the last run.",
		}),
	}

	m.registry.MustRegister(
		m.APIRequests,
		m.APIRequestDuration,
		m.PeriodsAggregated,
		m.EventsPublished,
		m.RunDuration,
		m.RunSuccess,
		m.LastRunTime,
	)

	return m
}

// WriteTextfile dumps the registry in Prometheus text exposition format at
// path, for pickup by the node_exporter textfile collector. No-op when path
// is empty.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
