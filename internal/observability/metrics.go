package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hourline"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	trackerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "events_total",
		Help:      "Live tracker starts and stops.",
	}, []string{"action"})

	emailsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "email",
		Name:      "processed_total",
		Help:      "Emails handled by the worker by template and outcome.",
	}, []string{"template", "outcome"})

	emailsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "email",
		Name:      "enqueued_total",
		Help:      "Emails written to the outbound stream by template.",
	}, []string{"template"})

	keepalivePings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "keepalive",
		Name:      "pings_total",
		Help:      "Keepalive pings by dependency and result.",
	}, []string{"dependency", "result"})
)

const (
	EmailSent       = "sent"
	EmailRetried    = "retried"
	EmailDeadLetter = "dead_letter"
)

func RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func RecordTrackerStart() {
	trackerEvents.WithLabelValues("start").Inc()
}

func RecordTrackerStop() {
	trackerEvents.WithLabelValues("stop").Inc()
}

func RecordEmailEnqueued(template string) {
	emailsEnqueued.WithLabelValues(template).Inc()
}

// RecordEmailOutcome counts a worker delivery result: EmailSent, EmailRetried or EmailDeadLetter.
func RecordEmailOutcome(template, outcome string) {
	emailsProcessed.WithLabelValues(template, outcome).Inc()
}

func RecordKeepalive(dependency string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	keepalivePings.WithLabelValues(dependency, result).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
