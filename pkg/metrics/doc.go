/*
Package metrics provides Prometheus metrics collection and exposition for
chainrocks.

The metrics package defines and registers all chainrocks metrics using the
Prometheus client library, giving observability into session lifecycle
(open/commit/undo/squash), mutation throughput, and operation latency.
Metrics are exposed via an HTTP handler for scraping by Prometheus servers.

# Architecture

	┌──────────────────── METRICS SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │          Prometheus Registry                │          │
	│  │  - Global DefaultRegistry                   │          │
	│  │  - MustRegister at package init             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │              Metric Types                   │          │
	│  │  Gauge: sessions open, live key count       │          │
	│  │  Counter: puts, removes, undo/squash/commit │          │
	│  │  Histogram: per-operation latency           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │          HTTP Metrics Endpoint              │          │
	│  │  - Handler: promhttp.Handler()              │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Metrics Catalog

chainrocks_sessions_open:
  - Type: Gauge
  - Description: number of undo sessions currently on the stack

chainrocks_sessions_started_total, chainrocks_undo_total,
chainrocks_commit_total, chainrocks_squash_total:
  - Type: Counter
  - Description: lifetime totals of each session-API call

chainrocks_session_logic_errors_total:
  - Type: Counter
  - Description: rejected operations due to a session invariant violation
    (for example a double-remove within one session)

chainrocks_put_total, chainrocks_remove_total, chainrocks_write_batch_total:
  - Type: Counter
  - Description: totals of mutating operations against the live state

chainrocks_put_duration_seconds, chainrocks_remove_duration_seconds,
chainrocks_write_batch_duration_seconds, chainrocks_undo_duration_seconds,
chainrocks_squash_duration_seconds:
  - Type: Histogram
  - Description: per-call latency for the named operation

chainrocks_keys_total:
  - Type: Gauge
  - Description: approximate number of keys in the live state, updated by
    whoever periodically samples it (the CLI's stats subcommand, or a
    caller's own polling loop)

# Usage

	timer := metrics.NewTimer()
	err := db.Put(key, value)
	timer.ObserveDuration(metrics.PutDuration)
	metrics.PutTotal.Inc()

# Integration Points

  - pkg/kv: updates session, mutation, and latency metrics
  - cmd/chainrocks: exposes /metrics via metrics.Handler()
*/
package metrics
