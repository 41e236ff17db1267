// Package metrics defines the Prometheus collectors for the API. Collectors
// are registered with the default registry on package init via promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "estate"

// HTTPRequestsTotal labels: method, route (gin full path), status code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created, by listing type.",
	},
	[]string{"type"},
)

// ListingTransitionsTotal label to: the status the listing moved into.
var ListingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_transitions_total",
		Help:      "Total number of listing status transitions.",
	},
	[]string{"to"},
)

var ProposalTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposal_transitions_total",
		Help:      "Total number of agent proposal status transitions.",
	},
	[]string{"to"},
)

// NotificationsSentTotal label result: "sent", "failed" or "skipped".
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_notifications_total",
		Help:      "Push deliveries attempted, by result.",
	},
	[]string{"result"},
)

// EmailsDispatchedTotal labels: mode ("sync", "queue", "goroutine", "disabled"), result.
var EmailsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_dispatched_total",
		Help:      "Emails handed to the mail provider or queue.",
	},
	[]string{"mode", "result"},
)

// GeocodeRequestsTotal label result: "cache_hit", "ok" or the error code.
var GeocodeRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_requests_total",
		Help:      "Geocoding lookups, by result.",
	},
	[]string{"result"},
)

func Handler() http.Handler { return promhttp.Handler() }

// Result maps an error to a "ok"/"error" label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
