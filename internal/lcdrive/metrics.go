// Public domain.

package lcdrive

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts driver work.
type Metrics struct {
	Groups     *prometheus.CounterVec // by result, "ok" or "error"
	Detections prometheus.Counter
	Faults     prometheus.Counter // absorbed arithmetic faults
	Duration   prometheus.Histogram
}

// NewMetrics creates driver metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Groups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lccorr_groups_total",
			Help: "Objects solved, by result",
		}, []string{"result"}),
		Detections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lccorr_detections_corrected_total",
			Help: "Detections passed through the corrector",
		}),
		Faults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lccorr_arithmetic_faults_total",
			Help: "Corrections downgraded to not applicable by an arithmetic fault",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lccorr_group_duration_seconds",
			Help:    "Time to solve one object",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.Groups, m.Detections, m.Faults, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Fault counts one absorbed fault.  It suits lcmath.Engine.OnFault.
func (m *Metrics) Fault() {
	if m != nil {
		m.Faults.Inc()
	}
}

func (m *Metrics) observe(r *Result, seconds float64) {
	if m == nil {
		return
	}
	if r.Err != nil {
		m.Groups.WithLabelValues("error").Inc()
	} else {
		m.Groups.WithLabelValues("ok").Inc()
	}
	m.Detections.Add(float64(len(r.Value.Corrected)))
	m.Duration.Observe(seconds)
}
