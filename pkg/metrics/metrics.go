package metrics

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "luminacine",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Requests sent to the LuminaCine REST backend.",
	}, []string{"method", "route", "status"})

	backendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "luminacine",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Latency of backend requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	checkoutSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "luminacine",
		Subsystem: "checkout",
		Name:      "submissions_total",
		Help:      "Booking submissions by kind and outcome.",
	}, []string{"kind", "outcome"})

	httpRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "luminacine",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of BFF requests by route pattern and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	openFlows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "luminacine",
		Subsystem: "checkout",
		Name:      "open_flows",
		Help:      "Checkout flows currently held in memory.",
	})
)

var idSegment = regexp.MustCompile(`^([0-9]+|[0-9a-fA-F-]{32,36})$`)

// Route collapses identifiers so label cardinality stays bounded:
// /bookings/42 -> /bookings/{id}.
func Route(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if idSegment.MatchString(p) {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// ObserveBackend records one backend round trip. status 0 means transport failure.
func ObserveBackend(method, path string, status int, elapsed time.Duration) {
	route := Route(path)
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	backendRequests.WithLabelValues(method, route, label).Inc()
	backendDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request. route is the router pattern, not
// the raw path.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func ObserveSubmission(kind, outcome string) {
	checkoutSubmissions.WithLabelValues(kind, outcome).Inc()
}

func SetOpenFlows(n int) {
	openFlows.Set(float64(n))
}
