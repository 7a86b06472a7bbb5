// Package metrics defines all custom Prometheus metrics for the payroll API.
// It is the single source of truth for metric names, labels, and help strings.
// Metrics are registered with the default registry via promauto at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payroll"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts tokens issued on signup and login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// TokenVerifyFailuresTotal counts token verification failures by kind. The
// kind is never surfaced to callers; it exists here and in logs only.
// Label:
//   - kind: "malformed", "invalid_signature", or "expired"
var TokenVerifyFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verify_failures_total",
		Help:      "Total number of token verification failures, by failure kind.",
	},
	[]string{"kind"},
)

// ── Attendance punch metrics ─────────────────────────────────────────────────

// PunchesProcessedTotal counts punches that completed processing successfully.
// Labels:
//   - type: "check_in" or "check_out"
//   - source: the punch source reported by the sender (e.g. "web", "terminal")
var PunchesProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "punches_processed_total",
		Help:      "Total number of attendance punches successfully processed.",
	},
	[]string{"type", "source"},
)

// PunchErrorsTotal counts punches that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "invalid_punch", "employee_not_found", "insert_failed")
var PunchErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "punch_errors_total",
		Help:      "Total number of attendance punches that failed processing.",
	},
	[]string{"reason"},
)

// PunchDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new punch, processed)
var PunchDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "punch_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// PunchProcessingDuration measures how long a single punch takes to process.
// Label:
//   - type: "check_in" or "check_out"
var PunchProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "punch_processing_duration_seconds",
		Help:      "Duration of punch processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)

// PunchQueueDepth tracks the current number of punches waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PunchQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "punch_queue_depth",
		Help:      "Current number of punches pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
