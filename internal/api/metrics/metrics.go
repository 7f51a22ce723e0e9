// Package metrics defines and registers all custom Prometheus metrics for
// the hospital portal. It is the single source of truth for metric names,
// labels, and help strings; registration happens at import time via
// promauto, and the router exposes everything on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Authentication metrics ────────────────────────────────────────────────────

// SignInsTotal counts successful sign-ins.
// Label:
//   - role: the role of the signed-in user (PATIENT, DOCTOR, ADMIN)
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of successful sign-ins, by role.",
	},
	[]string{"role"},
)

// SignInFailuresTotal counts failed sign-in attempts.
// Label:
//   - reason: "validation", "rejected", or "backend_unavailable"
var SignInFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_failures_total",
		Help:      "Total number of failed sign-in attempts, by reason.",
	},
	[]string{"reason"},
)

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: the registered role
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations, by role.",
	},
	[]string{"role"},
)

// ── Navigation metrics ────────────────────────────────────────────────────────

// GuardDenialsTotal counts navigation attempts a route guard redirected away.
// Label:
//   - guard: "anonymous_only", "authenticated", or "role"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of navigations denied by a route guard.",
	},
	[]string{"guard"},
)

// ── Backend boundary metrics ──────────────────────────────────────────────────

// BackendRequestsTotal counts round trips to the hospital backend.
// Labels:
//   - path: the request path (e.g. "/api/auth/login")
//   - status: the numeric HTTP status, or "error" on transport failure
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the hospital backend.",
	},
	[]string{"path", "status"},
)

// BackendRequestDuration measures backend round-trip latency.
// Label:
//   - path: the request path
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of round trips to the hospital backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"path"},
)
