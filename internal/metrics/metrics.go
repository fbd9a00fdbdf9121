// Package metrics defines and registers all custom Prometheus metrics for the
// storefront gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Gateway client metrics ───────────────────────────────────────────────────

// BackendRequestsTotal counts requests issued to the commerce backend.
// Labels:
//   - operation: the client operation name (e.g. "get_cart", "login")
//   - outcome: "ok", "client_error", "server_error", "unauthorized", "transport"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the commerce backend.",
	},
	[]string{"operation", "outcome"},
)

// SessionExpirationsTotal counts 401 responses that caused the credential to
// be cleared by the gateway's interceptor stage.
var SessionExpirationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expirations_total",
		Help:      "Total number of sessions invalidated after an observed 401.",
	},
)

// ── BFF proxy metrics ────────────────────────────────────────────────────────

// ProxyRequestsTotal counts proxied requests by route and result.
// Labels:
//   - route: the same-origin route (e.g. "/api/feedback/product")
//   - outcome: "relayed", "rejected", "upstream_failure"
var ProxyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_requests_total",
		Help:      "Total number of same-origin proxy requests, by route and outcome.",
	},
	[]string{"route", "outcome"},
)

// UpstreamRequestDuration measures the latency of upstream backend calls made
// on behalf of proxy routes.
// Label:
//   - route: the same-origin route that triggered the upstream call
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream backend calls issued by proxy routes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// AuthRejectionsTotal counts requests short-circuited locally because the
// inbound Authorization header was missing.
// Label:
//   - route: the same-origin route that rejected the request
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of proxy requests rejected for a missing Authorization header.",
	},
	[]string{"route"},
)
