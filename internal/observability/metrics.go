package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	CatalogRows prometheus.Gauge

	// Callback metrics.
	Callbacks           *prometheus.CounterVec   // labels: callback={controls,figure,download}, outcome={ok,prevented,error}
	FigureBuildDuration *prometheus.HistogramVec // labels: chart={mag_dist,mag_vs_depth,gap_vs_net,place_num,none}

	// Export metrics.
	Downloads     prometheus.Counter
	DownloadBytes prometheus.Counter
	ChartRenders  *prometheus.CounterVec // labels: format={svg,png}, outcome={ok,error}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CatalogRows,
		m.Callbacks,
		m.FigureBuildDuration,
		m.Downloads,
		m.DownloadBytes,
		m.ChartRenders,
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
		CatalogRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_dashboard",
			Name:      "catalog_rows",
			Help:      "Number of event rows loaded from the catalog file.",
		}),
		Callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "callbacks_total",
			Help:      "Callback invocations by callback and outcome.",
		}, []string{"callback", "outcome"}),
		FigureBuildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "figure_build_duration_seconds",
			Help:      "Time spent building a figure, by chart kind.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"chart"}),
		Downloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "downloads_total",
			Help:      "Total CSV exports served.",
		}),
		DownloadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "download_bytes_total",
			Help:      "Total bytes of CSV exports served.",
		}),
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "chart_renders_total",
			Help:      "Server-side chart image renders by format and outcome.",
		}, []string{"format", "outcome"}),
	}
}
