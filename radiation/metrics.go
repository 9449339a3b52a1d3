package radiation

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts radiation outcomes.
type Metrics struct {
	flips *prometheus.CounterVec
	noops prometheus.Counter
}

// NewMetrics creates the radiation counters and registers them with reg. A
// nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		flips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "u235_radiation_flips_total",
				Help: "Radiation events by where the flipped bit landed",
			},
			[]string{"zone"},
		),
		noops: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "u235_radiation_noops_total",
				Help: "Radiation events with a zero offset",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.flips)
		reg.MustRegister(m.noops)
	}

	return m
}

// Observe records an outcome. It is a no-op on a nil receiver.
func (m *Metrics) Observe(o Outcome) {
	if m == nil {
		return
	}

	if o.Zone == ZoneNone {
		m.noops.Inc()

		return
	}

	m.flips.WithLabelValues(o.Zone.String()).Inc()
}
