package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	fallback *prometheus.CounterVec
}

// New registers the fallback counter together with the Go and process
// collectors.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		fallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_store_fallback_total",
			Help:      "Booking operations served by the in-memory fallback store.",
		}, []string{"operation", "reason"}),
	}
	reg.MustRegister(
		m.fallback,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFallback counts one operation routed to the fallback store.
func (m *Metrics) ObserveFallback(operation, reason string) {
	m.fallback.WithLabelValues(operation, reason).Inc()
}

// RegisterPending exposes a gauge with the number of bookings held only in
// memory. pending is evaluated on every scrape.
func (m *Metrics) RegisterPending(namespace string, pending func() map[string]int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "booking_fallback_pending",
		Help:      "Bookings held by the fallback store and not yet in the primary store.",
	}, func() float64 {
		total := 0
		for _, n := range pending() {
			total += n
		}
		return float64(total)
	}))
}

// RegisterPrimaryUp exposes the last known primary-store session state.
func (m *Metrics) RegisterPrimaryUp(namespace string, up func() bool) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "booking_primary_up",
		Help:      "1 when the last primary-store session check succeeded.",
	}, func() float64 {
		if up() {
			return 1
		}
		return 0
	}))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
