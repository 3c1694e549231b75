// Package metrics collects and exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the service-level counters.
type Collector struct {
	sessionsCreated  prometheus.Counter
	exchangeFailures *prometheus.CounterVec
	httpStatus       *prometheus.CounterVec
	requestDuration  prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dp_sessions_created_total",
			Help: "Sessions minted after a successful identity exchange.",
		}),
		exchangeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dp_auth_exchange_failures_total",
			Help: "Identity provider exchanges that errored, rejected or timed out.",
		}, []string{"reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dp_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dp_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.sessionsCreated,
		c.exchangeFailures,
		c.httpStatus,
		c.requestDuration,
	)

	return c
}

// Default is the collector wired to the global Prometheus registry.
var Default = NewCollector(prometheus.DefaultRegisterer)

func (c *Collector) RecordSessionCreated() {
	c.sessionsCreated.Inc()
}

func (c *Collector) RecordExchangeFailure(reason string) {
	c.exchangeFailures.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
