// Package metrics defines and registers all custom Prometheus metrics of the
// Vault42 console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package load and served
// from /metrics by the console server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vault42"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts calls to the banking API.
// Labels:
//   - family: first path segment of the endpoint (e.g. "transactions", "analyst")
//   - outcome: "ok", "api_error", "network_error" or "fallback"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of banking API calls, by endpoint family and outcome.",
	},
	[]string{"family", "outcome"},
)

// GatewayRequestDuration measures round trips to the banking API, including
// failed ones.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of banking API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"family"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle transitions.
// Label:
//   - event: "login", "logout", "restored" or "expired"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// StorageErrorsTotal counts failed client storage operations.
// Labels:
//   - driver: "file", "redis", "mongo" or "memory"
//   - op: "get", "set" or "remove"
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of failed client storage operations.",
	},
	[]string{"driver", "op"},
)

// ── Batch metrics ─────────────────────────────────────────────────────────────

// BatchActionsTotal counts back-office batch items.
// Labels:
//   - action: the back-office action, e.g. "approve-deposit"
//   - outcome: "ok" or "error"
var BatchActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_actions_total",
		Help:      "Total number of back-office batch items, by action and outcome.",
	},
	[]string{"action", "outcome"},
)
