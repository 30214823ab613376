// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by middleware and services.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordGuardRejection(reason string)
	RecordCredentialIssued()
	RecordCacheLookup(hit bool)
}

// Guard rejection reasons.
const (
	ReasonMissing = "missing"
	ReasonInvalid = "invalid"
	ReasonExpired = "expired"
)

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	guardRejections   *prometheus.CounterVec
	credentialsIssued prometheus.Counter
	cacheLookups      *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kraftfix_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kraftfix_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		guardRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kraftfix_guard_rejections_total",
			Help: "Requests rejected by the access guard, by reason.",
		}, []string{"reason"}),
		credentialsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kraftfix_credentials_issued_total",
			Help: "Session credentials issued.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kraftfix_cache_lookups_total",
			Help: "Listing cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestDuration,
		c.guardRejections,
		c.credentialsIssued,
		c.cacheLookups,
	)

	return c
}

// RecordRequest records one served request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordGuardRejection records a request refused by the access guard.
func (c *Collector) RecordGuardRejection(reason string) {
	c.guardRejections.WithLabelValues(reason).Inc()
}

// RecordCredentialIssued records an issued session credential.
func (c *Collector) RecordCredentialIssued() {
	c.credentialsIssued.Inc()
}

// RecordCacheLookup records a listing cache hit or miss.
func (c *Collector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordGuardRejection(string)                      {}
func (Nop) RecordCredentialIssued()                          {}
func (Nop) RecordCacheLookup(bool)                           {}
