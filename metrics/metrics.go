// Package metrics provides Prometheus instrumentation for the forecast service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ForecastsComputed counts forecast computations, partitioned by path.
	ForecastsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_computations_total",
		Help: "Total number of forecasts computed",
	}, []string{"path"})

	// CacheHits counts forecast cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_cache_hits_total",
		Help: "Total number of forecast cache hits",
	})

	// CacheMisses counts forecast cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_cache_misses_total",
		Help: "Total number of forecast cache misses",
	})

	// AdvisorRequests counts calls to the AI restock advisor.
	AdvisorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_requests_total",
		Help: "Total number of restock advisor requests",
	}, []string{"status"})

	// RestockAlerts tracks how many products currently need restocking.
	RestockAlerts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_restock_alerts",
		Help: "Number of products below their restock threshold",
	})
)

// PathComputed and PathDefault label the two forecast output paths.
const (
	PathComputed = "computed"
	PathDefault  = "default"
)
