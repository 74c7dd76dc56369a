package observability

import (
	"github.com/applitest/testrunner-mcp/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "testrunner"

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics holds the server collectors.
type Metrics struct {
	ToolCalls      *prometheus.CounterVec
	ToolDuration   *prometheus.HistogramVec
	EngineCalls    *prometheus.CounterVec
	EngineDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tool",
				Name:      "calls_total",
				Help:      "Total number of MCP tool calls",
			},
			[]string{"tool", "outcome"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "tool",
				Name:      "duration_seconds",
				Help:      "Duration of MCP tool calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"tool"},
		),
		EngineCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "calls_total",
				Help:      "Total number of automation engine calls",
			},
			[]string{"operation", "outcome"},
		),
		EngineDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "duration_seconds",
				Help:      "Duration of automation engine calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"operation"},
		),
	}
}

// RegisterSessionGauge exposes whether the registry currently holds a session.
func RegisterSessionGauge(reg prometheus.Registerer, registry *session.Registry) prometheus.GaugeFunc {
	return promauto.With(reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "open",
			Help:      "1 when a session is registered as current, 0 otherwise",
		},
		func() float64 {
			if _, ok := registry.Current(); ok {
				return 1
			}
			return 0
		},
	)
}
