package observability

import (
	"context"

	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "taskroute"

// Metrics holds the router's Prometheus collectors.
type Metrics struct {
	NodeVisits         *prometheus.CounterVec
	Routes             *prometheus.CounterVec
	GenerateDuration   *prometheus.HistogramVec
	GenerateErrors     *prometheus.CounterVec
	Fallbacks          *prometheus.CounterVec
	LocalEvaluations   *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_visits_total",
				Help:      "Total number of node visits",
			},
			[]string{"node_id"},
		),
		Routes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "routes_total",
				Help:      "Completed routes by agent",
			},
			[]string{"agent"},
		),
		GenerateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generate_duration_seconds",
				Help:      "Duration of text-generation calls",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"node_id"},
		),
		GenerateErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generate_errors_total",
				Help:      "Failed text-generation calls",
			},
			[]string{"node_id"},
		),
		Fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "heuristic_fallbacks_total",
				Help:      "Manager replies that were classified by the heuristic",
			},
			[]string{"agent"},
		),
		LocalEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "local_evaluations_total",
				Help:      "Calculator inputs by local evaluation outcome",
			},
			[]string{"outcome"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Response cache lookups by result",
			},
			[]string{"result"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.NodeVisits, m.Routes, m.GenerateDuration, m.GenerateErrors,
			m.Fallbacks, m.LocalEvaluations, m.CacheLookups,
			m.HTTPRequests, m.HTTPRequestLatency,
		)
	}
	return m
}

// Hooks records router events into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID).Inc()
		},
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			// Terminal nodes carry the routed agent.
			if e.NodeID != domain.NodeManager {
				m.Routes.WithLabelValues(string(e.Agent)).Inc()
			}
		},
		OnGenerate: func(_ context.Context, e *domain.GenerateEvent) {
			m.GenerateDuration.WithLabelValues(e.NodeID).Observe(e.Duration.Seconds())
			if e.IsError {
				m.GenerateErrors.WithLabelValues(e.NodeID).Inc()
			}
		},
		OnFallback: func(_ context.Context, e *domain.FallbackEvent) {
			m.Fallbacks.WithLabelValues(string(e.Agent)).Inc()
		},
		OnLocalEval: func(_ context.Context, e *domain.LocalEvalEvent) {
			outcome := "delegated"
			if e.OK {
				outcome = "local"
			}
			m.LocalEvaluations.WithLabelValues(outcome).Inc()
		},
	}
}

// CacheHit and CacheMiss feed the cache lookup counter.
func (m *Metrics) CacheHit()  { m.CacheLookups.WithLabelValues("hit").Inc() }
func (m *Metrics) CacheMiss() { m.CacheLookups.WithLabelValues("miss").Inc() }
