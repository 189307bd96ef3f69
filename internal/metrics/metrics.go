package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/limaJavier/satbridge/pkg/sat"
)

const (
	callsMetricName    = "satbridge_calls_total"
	durationMetricName = "satbridge_call_duration_seconds"
)

// Outcome labels for calls that did not fail.
const (
	OutcomeSatisfiable   = "sat"
	OutcomeUnsatisfiable = "unsat"
)

// Collector counts boundary calls per engine and outcome. Failed calls use the error kind as
// their outcome. It implements sat.Observer.
type Collector struct {
	Calls    *prom.CounterVec
	Duration *prom.HistogramVec
}

func New() *Collector {
	return &Collector{
		Calls: prom.NewCounterVec(prom.CounterOpts{
			Name: callsMetricName,
			Help: "Total amount of solve calls crossing the boundary.",
		}, []string{"engine", "outcome"}),
		Duration: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    durationMetricName,
			Help:    "Duration of solve calls, including decoding and validation.",
			Buckets: prom.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"engine"}),
	}
}

// Register creates a Collector and registers it with registerer.
func Register(registerer prom.Registerer) (*Collector, error) {
	collector := New()
	if err := registerer.Register(collector); err != nil {
		return nil, err
	}
	return collector, nil
}

// Describe returns all descriptions of the collector.
func (c *Collector) Describe(ch chan<- *prom.Desc) {
	c.Calls.Describe(ch)
	c.Duration.Describe(ch)
}

// Collect returns the current state of all metrics of the collector.
func (c *Collector) Collect(ch chan<- prom.Metric) {
	c.Calls.Collect(ch)
	c.Duration.Collect(ch)
}

func (c *Collector) Observe(engine string, satisfiable bool, err error, duration time.Duration) {
	c.Calls.WithLabelValues(engine, outcome(satisfiable, err)).Inc()
	c.Duration.WithLabelValues(engine).Observe(duration.Seconds())
}

func outcome(satisfiable bool, err error) string {
	switch {
	case err != nil:
		if kind, ok := sat.KindOf(err); ok {
			return kind.String()
		}
		return sat.InternalError.String()
	case satisfiable:
		return OutcomeSatisfiable
	default:
		return OutcomeUnsatisfiable
	}
}
