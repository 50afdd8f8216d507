// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

// Package metrics provides Prometheus collectors for Livygate, exposed at
// /metrics in Prometheus text format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livygate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "livygate_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks currently active requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "livygate_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// AuthAttemptsTotal counts login attempts by result (success, failure).
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livygate_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// UserSessionsActive tracks the number of live entries in the session store.
	UserSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "livygate_user_sessions_active",
			Help: "Number of active user sessions",
		},
	)

	// LivyRequestsTotal counts upstream Livy calls by operation and result.
	LivyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livygate_livy_requests_total",
			Help: "Total number of upstream Livy API calls",
		},
		[]string{"operation", "result"},
	)

	// CircuitBreakerState reports the Livy circuit breaker state:
	// 0=closed, 1=open, 2=half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "livygate_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitionsTotal counts breaker state transitions.
	CircuitBreakerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livygate_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		HTTPRequestsInFlight.Inc()
	} else {
		HTTPRequestsInFlight.Dec()
	}
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAuthAttempt records one login attempt.
func RecordAuthAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordLivyRequest records one upstream Livy call.
func RecordLivyRequest(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	LivyRequestsTotal.WithLabelValues(operation, result).Inc()
}
