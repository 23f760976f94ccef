package obs

import (
	"courier-map-service/internal/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the refresh loop.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	cycles         *prometheus.CounterVec
	cycleDuration  prometheus.Histogram
	staleDiscarded prometheus.Counter
	transitions    *prometheus.CounterVec
	packages       *prometheus.GaugeVec
	stops          *prometheus.GaugeVec
	zones          *prometheus.GaugeVec
}

func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refresh_cycles_total",
				Help:      "Total number of refresh cycles by result",
			},
			[]string{"result"},
		),
		cycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refresh_duration_seconds",
				Help:      "Duration of fetch plus recompute in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		staleDiscarded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_results_discarded_total",
				Help:      "Fetch results dropped because a newer fetch was already applied",
			},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_transitions_total",
				Help:      "Package status transitions by target status",
			},
			[]string{"to"},
		),
		packages: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "packages",
				Help:      "Packages of the route by status in the latest view",
			},
			[]string{"route", "status"},
		),
		stops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stops",
				Help:      "Stops in the latest view",
			},
			[]string{"route"},
		),
		zones: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "zones",
				Help:      "Zones in the latest view",
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		m.cycles,
		m.cycleDuration,
		m.staleDiscarded,
		m.transitions,
		m.packages,
		m.stops,
		m.zones,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveView records an applied refresh cycle.
func (m *Metrics) ObserveView(routeID int, v domain.View, dur time.Duration) {
	if m == nil {
		return
	}
	route := strconv.Itoa(routeID)

	m.cycles.WithLabelValues("applied").Inc()
	m.cycleDuration.Observe(dur.Seconds())
	for _, t := range v.Transitions {
		m.transitions.WithLabelValues(string(t.To)).Inc()
	}
	m.packages.WithLabelValues(route, string(domain.StatusPending)).Set(float64(v.Counts.Pending))
	m.packages.WithLabelValues(route, string(domain.StatusDelivered)).Set(float64(v.Counts.Delivered))
	m.packages.WithLabelValues(route, string(domain.StatusFailed)).Set(float64(v.Counts.Failed))
	m.stops.WithLabelValues(route).Set(float64(len(v.Stops)))
	m.zones.WithLabelValues(route).Set(float64(v.ZoneCount))
}

func (m *Metrics) ObserveStale() {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues("stale").Inc()
	m.staleDiscarded.Inc()
}

func (m *Metrics) ObserveFetchError() {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues("fetch_error").Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
