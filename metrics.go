package harail

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of the routing service.
type Collector struct {
	reg *prometheus.Registry

	Queries       *prometheus.CounterVec // labels: search, outcome
	QueryDuration prometheus.Histogram

	StationsLoaded prometheus.Gauge
	TrainsLoaded   prometheus.Gauge
}

// NewCollector registers the routing metrics on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harail_queries_total",
			Help: "Total route queries by search type and outcome.",
		}, []string{"search", "outcome"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "harail_query_duration_seconds",
			Help:    "Duration of route queries, graph build included.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		StationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "harail_stations_loaded",
			Help: "Number of stations in the loaded timetable.",
		}),
		TrainsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "harail_trains_loaded",
			Help: "Number of trains in the loaded timetable.",
		}),
	}

	reg.MustRegister(c.Queries, c.QueryDuration, c.StationsLoaded, c.TrainsLoaded)
	return c
}

// Handler exposes the registry for a /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// ObserveQuery records one finished query.
func (c *Collector) ObserveQuery(search, outcome string, elapsed time.Duration) {
	c.Queries.WithLabelValues(search, outcome).Inc()
	c.QueryDuration.Observe(elapsed.Seconds())
}
