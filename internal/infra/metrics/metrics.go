// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "terrimap_active_sessions",
		Help: "Number of connected map editing sessions",
	})
	BridgeMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terrimap_bridge_messages_total",
		Help: "Websocket messages by direction and type",
	}, []string{"direction", "type"})
	QueryFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terrimap_query_fetches_total",
		Help: "Query fetches by key and cache result",
	}, []string{"key", "result"})
	MutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terrimap_mutations_total",
		Help: "Remote mutations by outcome",
	}, []string{"outcome"})
	RemoteRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "terrimap_remote_request_duration_ms",
		Help:    "Remote data service call duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"method", "status"})
	TileReadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terrimap_tile_reads_total",
		Help: "Reference layer tile reads by layer and result",
	}, []string{"layer", "result"})
	AnalyticsDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "terrimap_analytics_duration_ms",
		Help:    "Derived analytics computation time in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"analysis"})
)

func init() {
	prometheus.MustRegister(ActiveSessions)
	prometheus.MustRegister(BridgeMessagesTotal)
	prometheus.MustRegister(QueryFetchesTotal)
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(RemoteRequestDurationMs)
	prometheus.MustRegister(TileReadsTotal)
	prometheus.MustRegister(AnalyticsDurationMs)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
