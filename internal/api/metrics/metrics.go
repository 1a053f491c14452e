// Package metrics defines and registers all custom Prometheus metrics for the
// menu-studio API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "menu_studio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts tokens added to the revocation set.
// Label:
//   - reason: "logout" or "account_deleted"
var TokensRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of tokens revoked before natural expiry, by reason.",
	},
	[]string{"reason"},
)

// AuthFailuresTotal counts rejected authenticated requests.
// Label:
//   - reason: "missing_header", "bad_header", "invalid_token", "revoked"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authentication middleware.",
	},
	[]string{"reason"},
)

// ── Menu metrics ──────────────────────────────────────────────────────────────

// MenusCreatedTotal counts newly created menus.
var MenusCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menus_created_total",
		Help:      "Total number of menus created.",
	},
)

// MenuSubmissionsTotal counts submit attempts.
// Label:
//   - result: "success" or "already_submitted"
var MenuSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_submissions_total",
		Help:      "Total number of menu submit attempts, by result.",
	},
	[]string{"result"},
)

// CascadeDeleteDuration measures how long a cascading delete takes.
// Label:
//   - entity: "user" or "menu"
var CascadeDeleteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cascade_delete_duration_seconds",
		Help:      "Duration of cascading deletions, by root entity.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"entity"},
)

// ── Lifecycle audit metrics ───────────────────────────────────────────────────

// LifecycleEventsTotal counts audit-trail writes.
// Label:
//   - action: "created", "updated", "submitted", "deleted", or "error"
var LifecycleEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_events_total",
		Help:      "Total number of lifecycle audit events recorded, by action.",
	},
	[]string{"action"},
)

// LifecycleQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var LifecycleQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "lifecycle_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
