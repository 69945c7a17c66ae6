// Package metrics defines and registers all custom Prometheus metrics for the
// merchant platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts provider login attempts.
// Label:
//   - result: "success", "rejected", "unavailable", "invalid", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of provider login attempts, by result.",
	},
	[]string{"result"},
)

// ProviderRequestDuration measures the identity provider userinfo call.
// Label:
//   - result: "ok", "rejected" or "unavailable"
var ProviderRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of identity provider profile requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts users created on first login.
// Label:
//   - role: the role the user was created with
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created on first login, by role.",
	},
	[]string{"role"},
)

// RoleUpgradesTotal counts role changes applied during reconciliation.
var RoleUpgradesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_upgrades_total",
		Help:      "Total number of role upgrades applied at login.",
	},
	[]string{"from", "to"},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts access guard outcomes on protected routes.
// Label:
//   - outcome: "allowed", "unauthenticated", "forbidden" or "error"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by outcome.",
	},
	[]string{"outcome"},
)
