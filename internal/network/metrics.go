package network

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event results recorded in wukong_dashboard_events_total.
const (
	resultOK       = "ok"
	resultError    = "error"
	resultStale    = "stale"
	resultSkipped  = "skipped"
	resultDisabled = "disabled"
)

// Metrics instruments the dispatcher.
type Metrics struct {
	Events            *prometheus.CounterVec
	EventDuration     *prometheus.HistogramVec
	QueueDepth        prometheus.Gauge
	StaleLogResponses prometheus.Counter
}

// NewMetrics registers the dispatcher metrics with reg. A nil reg gets a
// private registry nobody scrapes.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		Events: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "wukong_dashboard_events_total",
			Help: "Network events processed by the dispatcher.",
		}, []string{"event", "result"}),

		EventDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wukong_dashboard_event_duration_seconds",
			Help:    "Time spent handling one network event.",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"event"}),

		QueueDepth: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "wukong_dashboard_queue_depth",
			Help: "Events waiting for the dispatcher.",
		}),

		StaleLogResponses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "wukong_dashboard_stale_log_responses_total",
			Help: "Log responses discarded because the buffer was reset meanwhile.",
		}),
	}
}
