// Package metrics defines and registers the custom Prometheus metrics of the
// testbot API. It is the single source of truth for metric names, labels and
// help strings. All metrics register with the default registry on import;
// HTTP request metrics are added separately by the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "testbot"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad email or password) or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Test case metrics ─────────────────────────────────────────────────────────

// TestCasesCreatedTotal counts newly created test cases.
var TestCasesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "test_cases_created_total",
		Help:      "Total number of test cases created.",
	},
)

// TestCaseTransitionsTotal counts accepted pause/resume status changes.
// Label:
//   - to: the status applied ("paused" or "pending")
var TestCaseTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "test_case_transitions_total",
		Help:      "Total number of test case status changes, by target status.",
	},
	[]string{"to"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsSubmittedTotal counts report submissions.
// Label:
//   - result: "created", "replayed", "idempotency_conflict", or a failure reason such as
//     "test_case_not_found", "project_not_found", "invalid_transition", "store_error"
var ReportsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Total number of report submissions, by result.",
	},
	[]string{"result"},
)

// ReportSubmissionDuration measures the report transaction end to end.
// Label:
//   - result: "created" or "error"
var ReportSubmissionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_submission_duration_seconds",
		Help:      "Duration of report submission including the store transaction.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Template metrics ──────────────────────────────────────────────────────────

// TemplatesCreatedTotal counts custom templates created.
var TemplatesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "templates_created_total",
		Help:      "Total number of custom templates created.",
	},
)

// ── Snapshot metrics ──────────────────────────────────────────────────────────

// SnapshotDuration measures how long the full data snapshot takes to assemble.
// Label:
//   - result: "ok" or "error"
var SnapshotDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_duration_seconds",
		Help:      "Duration of the concurrent reference data snapshot.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
