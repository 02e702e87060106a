// Package metrics defines the gateway's Prometheus metrics.
//
// Naming follows Prometheus conventions: sessiongw_ prefix, _total suffix
// for counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BootstrapTotal counts bootstrap attempts by terminal outcome
	// (authenticated, unauthenticated).
	BootstrapTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessiongw_bootstrap_total",
			Help: "Total session bootstrap attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// LoginTotal counts login attempts by outcome (success, failure).
	LoginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessiongw_login_total",
			Help: "Total login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// GuardDecisionsTotal counts navigation decisions by kind.
	GuardDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessiongw_guard_decisions_total",
			Help: "Total route guard decisions by decision kind.",
		},
		[]string{"decision"},
	)

	// PermissionRefreshTotal counts on-demand permission refreshes by outcome.
	PermissionRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessiongw_permission_refresh_total",
			Help: "Total permission refreshes by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		BootstrapTotal,
		LoginTotal,
		GuardDecisionsTotal,
		PermissionRefreshTotal,
	)
}
