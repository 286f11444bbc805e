package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for alert dispatch. Per-recipient failures
// are absorbed into counters rather than surfaced to callers, so these are
// the operator's only aggregate view of delivery reach.
type Metrics struct {
	Dispatches          *prometheus.CounterVec
	RecipientsContacted *prometheus.CounterVec
	DispatchFailures    *prometheus.CounterVec
	DispatchDuration    prometheus.Histogram
}

// New creates a new Metrics instance with all alert metrics registered.
func New() *Metrics {
	return &Metrics{
		Dispatches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_alert_dispatches_total",
			Help: "Total number of alert fan-outs, by channel",
		}, []string{"channel"}),
		RecipientsContacted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_alert_recipients_contacted_total",
			Help: "Total recipients successfully notified, by channel",
		}, []string{"channel"}),
		DispatchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_alert_dispatch_failures_total",
			Help: "Total per-recipient dispatch failures, by channel",
		}, []string{"channel"}),
		DispatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_alert_dispatch_duration_seconds",
			Help:    "Duration of a full alert fan-out",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// ObserveDispatch records the aggregate outcome of one fan-out.
func (m *Metrics) ObserveDispatch(channel string, contacted, failed int, start time.Time) {
	if m == nil {
		return
	}
	m.Dispatches.WithLabelValues(channel).Inc()
	m.RecipientsContacted.WithLabelValues(channel).Add(float64(contacted))
	m.DispatchFailures.WithLabelValues(channel).Add(float64(failed))
	m.DispatchDuration.Observe(time.Since(start).Seconds())
}
