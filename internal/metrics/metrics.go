// Package metrics provides centralized Prometheus metrics registry for the simulation service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "diamond_odds"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	CacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total cache lookups by result (hit or miss)",
	}, []string{"cache", "result"})
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total requests to the sports data provider by endpoint and status",
	}, []string{"endpoint", "status"})
	SchedulerRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_runs_total",
		Help:      "Total scheduled job runs by job and status",
	}, []string{"job", "status"})
)

// Histogram metrics
var (
	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of sports data provider requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(CacheRequestsTotal)
		registry.MustRegister(UpstreamRequestsTotal)
		registry.MustRegister(SchedulerRunsTotal)
		registry.MustRegister(UpstreamRequestDuration)

		// Register simulation metrics
		registry.MustRegister(SimulationsTotal)
		registry.MustRegister(SimulationTrialsTotal)
		registry.MustRegister(FactorTagsTotal)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(HomeWinProbability)

		// Register market metrics
		registry.MustRegister(EdgesDetectedTotal)
		registry.MustRegister(MarketEdge)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}

// RecordUpstreamRequest records a provider call and its latency.
func RecordUpstreamRequest(endpoint, status string, durationSeconds float64) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordSchedulerRun records a scheduled job execution.
// status should be one of: "success", "partial", "failure"
func RecordSchedulerRun(job, status string) {
	SchedulerRunsTotal.WithLabelValues(job, status).Inc()
}
