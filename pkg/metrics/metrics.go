package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Session metrics
	SessionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainrocks_sessions_open",
			Help: "Number of undo sessions currently on the stack",
		},
	)

	SessionsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainrocks_sessions_started_total",
			Help: "Total number of undo sessions started",
		},
	)

	UndoTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainrocks_undo_total",
			Help: "Total number of sessions reverted via undo",
		},
	)

	CommitTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainrocks_commit_total",
			Help: "Total number of times the undo stack was committed",
		},
	)

	SquashTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainrocks_squash_total",
			Help: "Total number of adjacent undo sessions squashed together",
		},
	)

	SessionLogicErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainrocks_session_logic_errors_total",
			Help: "Total number of rejected operations due to a session invariant violation",
		},
	)

	// Mutating-operation metrics
	PutTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainrocks_put_total",
			Help: "Total number of put operations (including batched)",
		},
	)

	RemoveTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainrocks_remove_total",
			Help: "Total number of remove operations (including batched)",
		},
	)

	WriteBatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainrocks_write_batch_total",
			Help: "Total number of write-batch flushes",
		},
	)

	PutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainrocks_put_duration_seconds",
			Help:    "Time taken to apply a single put in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RemoveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainrocks_remove_duration_seconds",
			Help:    "Time taken to apply a single remove in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	WriteBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainrocks_write_batch_duration_seconds",
			Help:    "Time taken to flush a write batch in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	UndoDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainrocks_undo_duration_seconds",
			Help:    "Time taken to undo a session in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SquashDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainrocks_squash_duration_seconds",
			Help:    "Time taken to squash two adjacent sessions in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Backend-level gauge; set by whoever periodically samples the live state.
	KeysTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainrocks_keys_total",
			Help: "Approximate number of keys in the live state",
		},
	)
)

func init() {
	prometheus.MustRegister(SessionsOpen)
	prometheus.MustRegister(SessionsStartedTotal)
	prometheus.MustRegister(UndoTotal)
	prometheus.MustRegister(CommitTotal)
	prometheus.MustRegister(SquashTotal)
	prometheus.MustRegister(SessionLogicErrorsTotal)
	prometheus.MustRegister(PutTotal)
	prometheus.MustRegister(RemoveTotal)
	prometheus.MustRegister(WriteBatchTotal)
	prometheus.MustRegister(PutDuration)
	prometheus.MustRegister(RemoveDuration)
	prometheus.MustRegister(WriteBatchDuration)
	prometheus.MustRegister(UndoDuration)
	prometheus.MustRegister(SquashDuration)
	prometheus.MustRegister(KeysTotal)
}

// Handler returns the Prometheus HTTP handler for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
