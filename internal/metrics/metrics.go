// Package metrics exposes Prometheus counters for HTTP traffic and domain
// events. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recordsCreated  *prometheus.CounterVec
	verifications   *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
}

func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classmanager_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "classmanager_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		recordsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classmanager_records_created_total",
				Help: "Records created per kind",
			},
			[]string{"kind"},
		),
		verifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classmanager_verification_codes_total",
				Help: "Verification code events per outcome",
			},
			[]string{"outcome"},
		),
		rateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classmanager_rate_limited_requests_total",
				Help: "Requests rejected by the per-IP rate limiter",
			},
			[]string{"route"},
		),
	}
}

func (m *Metrics) RequestCompleted(route, method, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCounter.WithLabelValues(route, method, status).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *Metrics) RecordCreated(kind string) {
	if m == nil {
		return
	}
	m.recordsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordVerification(outcome string) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RateLimitExceeded(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}
