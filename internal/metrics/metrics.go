// Package metrics exports Prometheus collectors for task evaluation.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"webmall/evaluation/webmall/task"
)

const (
	namespace = "webmall"
	subsystem = "eval"
)

// Metrics reports validation activity. It implements task.Recorder.
type Metrics struct {
	validateCalls        *prometheus.CounterVec
	checkpointsSatisfied *prometheus.CounterVec
	wrongSolutions       *prometheus.CounterVec
	stepScoreDelta       prometheus.Histogram
	sessionsActive       prometheus.Gauge
}

var _ task.Recorder = (*Metrics)(nil)

var (
	defaultMetricsOnce sync.Once
	sharedMetrics      *Metrics
)

// Default returns the instance registered with the global Prometheus registry.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		sharedMetrics = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return sharedMetrics
}

// MustNewMetrics constructs a Metrics instance using the provided registerer.
// Collectors already registered under the same name are reused; any other
// registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		validateCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "validate_calls_total",
				Help:      "Number of validate calls per task.",
			},
			[]string{"task"},
		),
		checkpointsSatisfied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkpoints_satisfied_total",
				Help:      "Checkpoints newly satisfied, by checkpoint type.",
			},
			[]string{"type"},
		),
		wrongSolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "wrong_solutions_total",
				Help:      "Submissions or detections that matched no checkpoint.",
			},
			[]string{"task"},
		),
		stepScoreDelta: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "step_score_delta",
				Help:      "Score gained per validate call.",
				Buckets:   []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1},
			},
		),
		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sessions_active",
				Help:      "Task sessions currently held by the server.",
			},
		),
	}

	m.validateCalls = register(reg, m.validateCalls)
	m.checkpointsSatisfied = register(reg, m.checkpointsSatisfied)
	m.wrongSolutions = register(reg, m.wrongSolutions)
	m.stepScoreDelta = register(reg, m.stepScoreDelta)
	m.sessionsActive = register(reg, m.sessionsActive)
	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return already.ExistingCollector.(T)
		}
		panic(err)
	}
	return c
}

// RecordStep implements task.Recorder.
func (m *Metrics) RecordStep(taskID string, result task.StepResult) {
	if m == nil {
		return
	}
	m.validateCalls.WithLabelValues(taskID).Inc()
	m.stepScoreDelta.Observe(result.Score)
	for _, rec := range result.Detail.ReachedDuringThisStep {
		m.checkpointsSatisfied.WithLabelValues(string(rec.Type)).Inc()
	}
	if n := len(result.Detail.WrongSolutions); n > 0 {
		m.wrongSolutions.WithLabelValues(taskID).Add(float64(n))
	}
}

// SessionOpened marks a session as active.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
}

// SessionClosed marks a session as deleted or evicted.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}
