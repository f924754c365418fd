package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for measurement activity.
type Metrics struct {
	FillsTotal         prometheus.Counter
	FillBytesTotal     prometheus.Counter
	TrialsTotal        *prometheus.CounterVec
	LastThroughputMBps *prometheus.GaugeVec
	RunDuration        *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates the instruments on a fresh registry, so repeated
// construction in tests cannot collide.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.FillsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "perflab_fills_total",
		Help: "Number of buffer fills performed",
	})

	m.FillBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "perflab_fill_bytes_total",
		Help: "Total bytes written by buffer fills",
	})

	m.TrialsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "perflab_trials_total",
		Help: "Repetition-tester trials executed",
	}, []string{"kind"})

	m.LastThroughputMBps = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "perflab_last_throughput_mbps",
		Help: "Average throughput of the most recent run, in MB/s",
	}, []string{"kind"})

	m.RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "perflab_run_duration_seconds",
		Help:    "Wall time of measurement runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	m.registry.MustRegister(
		m.FillsTotal,
		m.FillBytesTotal,
		m.TrialsTotal,
		m.LastThroughputMBps,
		m.RunDuration,
	)

	return m
}

// ObserveFill records one buffer fill of the given size.
func (m *Metrics) ObserveFill(bytes int) {
	m.FillsTotal.Inc()
	m.FillBytesTotal.Add(float64(bytes))
}

// ObserveRun records one finished measurement run of the given kind.
func (m *Metrics) ObserveRun(kind string, trials uint64, throughputMBps float64, elapsed time.Duration) {
	m.TrialsTotal.WithLabelValues(kind).Add(float64(trials))
	m.LastThroughputMBps.WithLabelValues(kind).Set(throughputMBps)
	m.RunDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// Handler returns the scrape handler for this metrics set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer exposes /metrics on the given port. It blocks, so run
// it on its own goroutine.
func (m *Metrics) StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
