// Package metrics exposes Prometheus metrics for refresh cycles, engine
// actions and listener events.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/listener"
	"github.com/agentstation/glossync/pkg/reconciler"
)

const metricsNamespace = "glossync"

// Refresh outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
)

// Metrics holds the collectors of one connector on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	refreshes        *prometheus.CounterVec
	refreshDurations prometheus.Histogram
	lastRefresh      prometheus.Gauge
	refreshing       prometheus.Gauge
	actions          *prometheus.CounterVec
	events           *prometheus.CounterVec
	eventDurations   prometheus.Histogram
}

var (
	_ reconciler.Recorder = (*Metrics)(nil)
	_ listener.Observer   = (*Metrics)(nil)
)

// New creates and registers the collectors. Process and Go runtime
// collectors are included.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "refreshes_total",
				Help:      "Number of refresh cycles by outcome",
			},
			[]string{"outcome"},
		),
		refreshDurations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "refresh_duration_seconds",
				Help:      "Duration of completed refresh cycles in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
			},
		),
		lastRefresh: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "last_successful_refresh_timestamp_seconds",
				Help:      "Unix time of the last successful refresh",
			},
		),
		refreshing: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "refreshing",
				Help:      "Set to 1 while a refresh is running",
			},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "element_actions_total",
				Help:      "Actions taken by the reconciliation engine",
			},
			[]string{
				"kind",   // Glossary, GlossaryCategory or GlossaryTerm
				"action", // created, updated, refreshed, ...
			},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "events_total",
				Help:      "Egeria change events by type and outcome",
			},
			[]string{"event_type", "outcome"},
		),
		eventDurations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "event_duration_seconds",
				Help:      "Time spent handling one Egeria change event",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	m.registry.MustRegister(
		m.refreshes, m.refreshDurations, m.lastRefresh, m.refreshing,
		m.actions, m.events, m.eventDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordAction implements reconciler.Recorder.
func (m *Metrics) RecordAction(kind egeria.ElementKind, action reconciler.Action) {
	m.actions.WithLabelValues(kind.String(), string(action)).Inc()
}

// ObserveEvent implements listener.Observer.
func (m *Metrics) ObserveEvent(event egeria.Event, outcome listener.Outcome, duration time.Duration) {
	m.events.WithLabelValues(string(event.Type), string(outcome)).Inc()
	m.eventDurations.Observe(duration.Seconds())
}

// RefreshStarted marks a refresh as running.
func (m *Metrics) RefreshStarted() {
	m.refreshing.Set(1)
}

// RefreshFinished records a completed or failed refresh. result may be nil.
func (m *Metrics) RefreshFinished(result *reconciler.Result, err error) {
	m.refreshing.Set(0)
	if err != nil {
		m.refreshes.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	m.refreshes.WithLabelValues(OutcomeSuccess).Inc()
	if result != nil {
		m.refreshDurations.Observe(result.Metadata.Duration.Seconds())
		m.lastRefresh.Set(float64(result.Metadata.EndTime.Unix()))
	}
}

// RefreshRejected records a refresh that was not started because another
// one was running.
func (m *Metrics) RefreshRejected() {
	m.refreshes.WithLabelValues(OutcomeBusy).Inc()
}
