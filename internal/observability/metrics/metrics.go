package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for availability lookups and
// booking submissions.
type BookingMetrics struct {
	lookupTotal     *prometheus.CounterVec
	lookupSlots     prometheus.Histogram
	submissionTotal *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		lookupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "availability",
			Name:      "lookup_total",
			Help:      "Total availability lookups by outcome",
		}, []string{"outcome"}),
		lookupSlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "booking",
			Subsystem: "availability",
			Name:      "lookup_slots",
			Help:      "Slots returned per successful availability lookup",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		submissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "submitter",
			Name:      "submission_total",
			Help:      "Total booking submissions by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.lookupTotal, m.lookupSlots, m.submissionTotal)
	return m
}

func (m *BookingMetrics) ObserveLookup(outcome string, slots int) {
	if m == nil {
		return
	}
	m.lookupTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" || outcome == "cache_hit" {
		m.lookupSlots.Observe(float64(slots))
	}
}

func (m *BookingMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionTotal.WithLabelValues(outcome).Inc()
}
