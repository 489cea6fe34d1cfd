// Package metrics exposes Prometheus counters for service-level outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	urlsCreated     prometheus.Counter
	visits          *prometheus.CounterVec
	shortenRejected *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		urlsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortlink_urls_created_total",
			Help: "Total number of short URLs created.",
		}),
		visits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shortlink_visits_total",
			Help: "Total number of visit attempts by outcome.",
		}, []string{"outcome"}),
		shortenRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shortlink_shorten_rejected_total",
			Help: "Total number of rejected shorten requests by reason.",
		}, []string{"reason"}),
	}

	registry.MustRegister(m.urlsCreated, m.visits, m.shortenRejected)

	return m
}

// URLCreated counts a successful shorten operation.
func (m *Metrics) URLCreated() {
	m.urlsCreated.Inc()
}

// VisitRecorded counts a visit attempt with its outcome.
func (m *Metrics) VisitRecorded(outcome string) {
	m.visits.WithLabelValues(outcome).Inc()
}

// ShortenRejected counts a rejected shorten request with its reason.
func (m *Metrics) ShortenRejected(reason string) {
	m.shortenRejected.WithLabelValues(reason).Inc()
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the registry in exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
