package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's Prometheus instruments. A single instance is
// created at startup and shared by the handlers.
type Metrics struct {
	EventsReceived    *prometheus.CounterVec
	EventsFailed      *prometheus.CounterVec
	SignatureRejected prometheus.Counter
	EventDuration     *prometheus.HistogramVec
	TerminalAttempts  prometheus.Counter
}

// New registers the instruments on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the instruments on the given registerer. Tests
// use a fresh registry per instance.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aurabot_events_received_total",
			Help: "Inbound gateway events by kind.",
		}, []string{"kind"}),
		EventsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aurabot_events_failed_total",
			Help: "Events whose processing returned an error, by kind.",
		}, []string{"kind"}),
		SignatureRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "aurabot_signature_rejected_total",
			Help: "Signed requests rejected for an invalid Ed25519 signature.",
		}),
		EventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aurabot_event_duration_seconds",
			Help:    "Event processing duration by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		TerminalAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "aurabot_terminal_attempts_total",
			Help: "Events that exhausted the redelivery ladder.",
		}),
	}
}

// Handler exposes the default registry for scraping
func Handler() http.Handler {
	return promhttp.Handler()
}
