// Package metrics defines market comparison metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Market counter vectors
var (
	EdgesDetectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edges_detected_total",
		Help:      "Total actionable market edges by market",
	}, []string{"market"})
)

// Market gauge vectors
var (
	MarketEdge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "market_edge",
		Help:      "Latest model edge over the vig-free market probability by market and side",
	}, []string{"market", "side"})
)

// RecordMarketEdge updates the latest edge and counts it when actionable.
func RecordMarketEdge(market, side string, edge float64, actionable bool) {
	MarketEdge.WithLabelValues(market, side).Set(edge)
	if actionable {
		EdgesDetectedTotal.WithLabelValues(market).Inc()
	}
}
