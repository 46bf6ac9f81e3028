// Package api exposes simulations, factor analysis and odds conversion over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/tracing"
)

// RouterConfig holds router options
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	// MetricsPath mounts MetricsHandler when both are set
	MetricsPath    string
	MetricsHandler http.Handler
	// TraceName enables X-Ray request segments under this name
	TraceName string
	// Games mounts the game, projection and odds read routes when set
	Games *GamesHandler
}

// NewRouter wires every route onto a chi router
func NewRouter(h *Handler, health *Health, cfg RouterConfig, logger *logrus.Logger) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.TraceName != "" {
		r.Use(tracing.Middleware(cfg.TraceName))
	}
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", health.HandleHealth)
	r.Get("/live", health.HandleLive)
	r.Get("/ready", health.HandleReady)
	if cfg.MetricsPath != "" && cfg.MetricsHandler != nil {
		r.Handle(cfg.MetricsPath, cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/simulations/baseball", func(r chi.Router) {
			r.Post("/factors/{gameID}", h.AnalyzeFactors)
			r.Post("/{gameID}", h.RunSimulation)
			r.Get("/{gameID}/history", h.GetHistory)
		})
		r.Get("/odds/convert", h.ConvertOdds)
		if cfg.Games != nil {
			cfg.Games.Routes(r)
		}
	})

	return r
}

// requestLogger logs one line per request
func requestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger == nil {
				next.ServeHTTP(w, r)
				return
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.WithFields(logrus.Fields{
				"component":   "api",
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimiddleware.GetReqID(r.Context()),
			}).Info("HTTP request")
		})
	}
}
