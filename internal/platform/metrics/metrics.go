// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the API.

All collectors are registered on an injected [prometheus.Registerer] so tests
and multiple servers in one process never collide on the default registry.
*/
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/secureblog/internal/platform/constants"
)

// Metrics holds every collector the API reports.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestsInFlight prometheus.Gauge
	RequestDuration  *prometheus.HistogramVec
	LoginFailures    prometheus.Counter
	CSRFRejections   *prometheus.CounterVec
	TokenRejections  *prometheus.CounterVec
	DeniedMutations  *prometheus.CounterVec
}

// New creates a fresh registry with process/Go collectors and the API collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	namespace := constants.MetricsNamespace

	return &Metrics{
		registry: registry,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status class",
		}, []string{"method", "route", "status"}),

		RequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failures_total",
			Help:      "Total number of rejected login attempts",
		}),

		CSRFRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csrf_rejections_total",
			Help:      "Total number of requests rejected by the anti-forgery check",
		}, []string{"reason"}),

		TokenRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_rejections_total",
			Help:      "Total number of requests rejected by the bearer check",
		}, []string{"reason"}),

		DeniedMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "denied_mutations_total",
			Help:      "Total number of post mutations that matched no owned row",
		}, []string{"operation"}),
	}
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// # Recorders
//
// Recorders are nil-safe so components can be constructed without metrics.

// LoginFailed counts a rejected login.
func (m *Metrics) LoginFailed() {
	if m != nil {
		m.LoginFailures.Inc()
	}
}

// CSRFRejected counts an anti-forgery rejection.
func (m *Metrics) CSRFRejected(reason string) {
	if m != nil {
		m.CSRFRejections.WithLabelValues(reason).Inc()
	}
}

// TokenRejected counts a bearer rejection.
func (m *Metrics) TokenRejected(reason string) {
	if m != nil {
		m.TokenRejections.WithLabelValues(reason).Inc()
	}
}

// MutationDenied counts an update or delete that touched no owned row.
func (m *Metrics) MutationDenied(operation string) {
	if m != nil {
		m.DeniedMutations.WithLabelValues(operation).Inc()
	}
}

// # HTTP Middleware

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Instrument records request counts and latency labelled by chi route pattern.
//
// Route patterns keep label cardinality bounded; raw paths would embed post ids.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		statusClass := fmt.Sprintf("%dxx", recorder.status/100)
		m.RequestsTotal.WithLabelValues(request.Method, route, statusClass).Inc()
		m.RequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(start).Seconds())
	})
}
