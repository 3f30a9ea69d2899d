package bot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command outcomes recorded by commandMetrics.
const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeUnknown = "unknown"
)

// commandMetrics counts and times slash commands.
type commandMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newCommandMetrics(reg prometheus.Registerer) *commandMetrics {
	factory := promauto.With(reg)

	return &commandMetrics{
		total: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cherry",
				Subsystem: "bot",
				Name:      "commands_total",
				Help:      "Slash commands handled",
			},
			[]string{"command", "outcome"}, // outcome: "ok|error|unknown"
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cherry",
				Subsystem: "bot",
				Name:      "command_duration_seconds",
				Help:      "Time spent handling a slash command",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
			},
			[]string{"command"},
		),
	}
}

func (m *commandMetrics) observe(command, outcome string, elapsed time.Duration) {
	m.total.WithLabelValues(command, outcome).Inc()
	if outcome != outcomeUnknown {
		m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
	}
}
