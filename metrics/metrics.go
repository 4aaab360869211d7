// Package metrics records per-method request counts and latency for the wallet API client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeAPIError  = "api_error"
	OutcomeStatus    = "http_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeInvalid   = "invalid_params"
)

// Collector holds the client metrics
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector creates the client metrics and registers them with reg.
// A nil reg leaves the metrics unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "omchain",
				Name:      "api_requests_total",
				Help:      "Total wallet API requests by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "omchain",
				Name:      "api_request_duration_seconds",
				Help:      "Wallet API request latency by method.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	if reg != nil {
		for _, col := range []prometheus.Collector{c.requests, c.duration} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// ObserveRequest records one finished request. Safe on a nil Collector.
func (c *Collector) ObserveRequest(method, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, outcome).Inc()
	c.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Requests returns the request counter, mainly for reporting
func (c *Collector) Requests() *prometheus.CounterVec {
	return c.requests
}
