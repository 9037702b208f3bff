// Package metrics defines and registers all custom Prometheus metrics for the
// sweet shop inventory API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts created accounts.
// Label:
//   - role: "user" or "admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Inventory metrics ─────────────────────────────────────────────────────────

// SweetsCreatedTotal counts newly created inventory records.
// Label:
//   - category: one of the fixed category set
var SweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweets_created_total",
		Help:      "Total number of sweets created, by category.",
	},
	[]string{"category"},
)

// PurchasesTotal counts purchase attempts.
// Label:
//   - result: "success", "insufficient_stock", or "error"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase attempts, by result.",
	},
	[]string{"result"},
)

// RestocksTotal counts successful restock operations.
var RestocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restocks_total",
		Help:      "Total number of successful restocks.",
	},
)

// PurchaseUnits observes how many units a single purchase takes.
var PurchaseUnits = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "purchase_units",
		Help:      "Distribution of units bought per purchase.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	},
)
