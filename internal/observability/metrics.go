package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the checker.
type Metrics struct {
	Checks          *prometheus.CounterVec // labels: source={manual,measured,estimated}, band
	CheckRejections *prometheus.CounterVec // labels: reason={invalid_input,busy}
	CurrentCelsius  prometheus.Gauge
	ProbeAvailable  prometheus.Gauge

	// Detection metrics.
	Detections        *prometheus.CounterVec // labels: outcome={measured,estimated,unsupported,failed}
	DetectionDuration prometheus.Histogram
	DetectionInFlight prometheus.Gauge

	// Notice metrics.
	Notices             *prometheus.CounterVec // labels: severity={info,warning,error}
	NoticePublishErrors prometheus.Counter
}

// NewMetrics creates and registers all checker metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewUnregisteredMetrics()
	prometheus.MustRegister(
		m.Checks,
		m.CheckRejections,
		m.CurrentCelsius,
		m.ProbeAvailable,
		m.Detections,
		m.DetectionDuration,
		m.DetectionInFlight,
		m.Notices,
		m.NoticePublishErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics with no registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

// NewUnregisteredMetrics creates Metrics that are never exported, for
// short-lived processes such as the CLI.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		Checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phonetemp",
			Name:      "checks_total",
			Help:      "Temperatures classified, by reading source and resulting band.",
		}, []string{"source", "band"}),
		CheckRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phonetemp",
			Name:      "check_rejections_total",
			Help:      "Check or detect requests rejected before classification.",
		}, []string{"reason"}),
		CurrentCelsius: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "phonetemp",
			Name:      "current_temperature_celsius",
			Help:      "Temperature of the most recent successful check.",
		}),
		ProbeAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "phonetemp",
			Name:      "probe_available",
			Help:      "1 when the battery capability answered the startup probe, 0 otherwise.",
		}),
		Detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phonetemp",
			Name:      "detections_total",
			Help:      "Battery capability detections by outcome.",
		}, []string{"outcome"}),
		DetectionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "phonetemp",
			Name:      "detection_duration_seconds",
			Help:      "Duration of a battery capability query.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		DetectionInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "phonetemp",
			Name:      "detection_in_flight",
			Help:      "1 while a detection is running, 0 otherwise.",
		}),
		Notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phonetemp",
			Name:      "notices_total",
			Help:      "User-facing notices emitted, by severity.",
		}, []string{"severity"}),
		NoticePublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phonetemp",
			Name:      "notice_publish_errors_total",
			Help:      "Notices that could not be handed to the notifier.",
		}),
	}
}
