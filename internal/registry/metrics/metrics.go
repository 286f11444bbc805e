package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module.
type Metrics struct {
	RecipientsRegistered prometheus.Counter
	LocationUpdates      prometheus.Counter
}

// New creates a new Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		RecipientsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_recipients_registered_total",
			Help: "Total number of recipients registered",
		}),
		LocationUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_location_updates_total",
			Help: "Total number of accepted location updates",
		}),
	}
}

// IncrementRecipientsRegistered records a successful registration.
func (m *Metrics) IncrementRecipientsRegistered() {
	if m != nil {
		m.RecipientsRegistered.Inc()
	}
}

// IncrementLocationUpdates records an accepted location update.
func (m *Metrics) IncrementLocationUpdates() {
	if m != nil {
		m.LocationUpdates.Inc()
	}
}
