// Package metrics exposes Prometheus instruments for the tip service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tipwiser"

// Metrics groups the collectors registered for one server.
type Metrics struct {
	registry *prometheus.Registry

	Events          *prometheus.CounterVec
	RejectedSplits  prometheus.Counter
	SessionsCreated prometheus.Counter
	SessionsEnded   *prometheus.CounterVec
	RPCDuration     *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry. activeSessions is
// sampled on every scrape.
func New(activeSessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_events_total",
			Help:      "Input events applied to session engines, by event.",
		}, []string{"event"}),
		RejectedSplits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_rejected_total",
			Help:      "Split changes ignored because they would leave [1, 100].",
		}),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Sessions started.",
		}),
		SessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Sessions removed, by reason (ended, expired).",
		}, []string{"reason"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}

	reg.MustRegister(
		m.Events,
		m.RejectedSplits,
		m.SessionsCreated,
		m.SessionsEnded,
		m.RPCDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if activeSessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Live sessions held in memory.",
		}, func() float64 { return float64(activeSessions()) }))
	}
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Event counts one applied input event.
func (m *Metrics) Event(name string) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(name).Inc()
}

// SplitRejected counts a split change that was ignored.
func (m *Metrics) SplitRejected() {
	if m == nil {
		return
	}
	m.RejectedSplits.Inc()
}

// SessionStarted counts a new session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.SessionsCreated.Inc()
}

// SessionsRemoved counts n sessions removed for reason.
func (m *Metrics) SessionsRemoved(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsEnded.WithLabelValues(reason).Add(float64(n))
}
