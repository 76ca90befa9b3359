// Package metrics exposes Prometheus instrumentation for the site.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequests counts requests by route pattern, method and status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_http_requests_total",
		Help: "Total HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// httpDuration tracks handler latency
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"route"})

	// contactSubmissions counts contact form outcomes
	contactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_contact_submissions_total",
		Help: "Contact form submissions by outcome",
	}, []string{"outcome"})

	liveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portfolio_live_sessions",
		Help: "Open live viewport sessions",
	})

	// liveMessages counts inbound live session messages by type
	liveMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_live_messages_total",
		Help: "Live session messages received by type",
	}, []string{"type"})
)

// ObserveRequest records one finished HTTP request
func ObserveRequest(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ContactOutcome records a contact submission result such as "success",
// "config_missing" or "relay_failed"
func ContactOutcome(outcome string) {
	contactSubmissions.WithLabelValues(outcome).Inc()
}

// SessionOpened marks a live session as started
func SessionOpened() { liveSessions.Inc() }

// SessionClosed marks a live session as finished
func SessionClosed() { liveSessions.Dec() }

// LiveMessage records an inbound live session message
func LiveMessage(kind string) {
	liveMessages.WithLabelValues(kind).Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
