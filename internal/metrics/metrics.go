// Package metrics defines the Prometheus collectors exported by the recipe API.
// All collectors register with the default registry on package init, so the
// /metrics endpoint only needs promhttp.Handler().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipe"

// HTTPRequestsTotal counts finished HTTP requests.
// Labels: method, route (gin full path or "unmatched"), status code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// UsersCreatedTotal counts identities created.
// Label role: "user" or "superuser".
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
	[]string{"role"},
)

// TokensIssuedTotal counts token endpoint successes.
// Label result: "created" for a new key, "reused" when the existing key was returned.
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of auth tokens handed out.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts rejected credentials and tokens.
// Label reason: "credentials", "missing_token", "invalid_token".
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts.",
	},
	[]string{"reason"},
)

// ResourcesCreatedTotal counts owned resources created, by kind.
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of owned recipe attributes created.",
	},
	[]string{"kind"},
)
