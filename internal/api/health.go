package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DatabasePinger defines the interface for checking database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// CacheStatter reports hit accounting for one in-memory cache.
type CacheStatter interface {
	Name() string
	Stats() (hits, misses uint64, ratio float64)
	ItemCount() int
}

// CacheStatus is the health view of one cache.
type CacheStatus struct {
	Name     string  `json:"name"`
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
	Items    int     `json:"items"`
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string        `json:"status"`
	Service   string        `json:"service"`
	Timestamp string        `json:"timestamp,omitempty"`
	Version   string        `json:"version,omitempty"`
	Caches    []CacheStatus `json:"caches,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Health serves liveness and readiness checks.
type Health struct {
	serviceName string
	version     string
	db          DatabasePinger
	caches      []CacheStatter

	mu    sync.RWMutex
	ready bool
}

// NewHealth creates health handlers. db may be nil when persistence is disabled.
func NewHealth(serviceName, version string, db DatabasePinger) *Health {
	return &Health{
		serviceName: serviceName,
		version:     version,
		db:          db,
	}
}

// WithCaches reports the given caches on /health.
func (h *Health) WithCaches(caches ...CacheStatter) *Health {
	h.caches = append(h.caches, caches...)
	return h
}

// SetReady marks the service as ready to accept traffic.
func (h *Health) SetReady(ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = ready
}

// IsReady returns whether the service is ready.
func (h *Health) IsReady() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ready
}

// HandleHealth handles the /health endpoint - basic liveness check.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   h.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Caches:    h.cacheStatus(),
	})
}

func (h *Health) cacheStatus() []CacheStatus {
	if len(h.caches) == 0 {
		return nil
	}
	statuses := make([]CacheStatus, 0, len(h.caches))
	for _, c := range h.caches {
		hits, misses, ratio := c.Stats()
		statuses = append(statuses, CacheStatus{
			Name:     c.Name(),
			Hits:     hits,
			Misses:   misses,
			HitRatio: ratio,
			Items:    c.ItemCount(),
		})
	}
	return statuses
}

// HandleLive handles the /live endpoint - kubernetes liveness check.
func (h *Health) HandleLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: h.serviceName})
}

// HandleReady handles the /ready endpoint - checks database connectivity.
func (h *Health) HandleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !h.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			allHealthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	response := ReadyResponse{
		Service:  h.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	if allHealthy {
		response.Status = "ok"
		respondJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	respondJSON(w, http.StatusServiceUnavailable, response)
}
