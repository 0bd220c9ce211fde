// Package http exposes the advisory API plus health, readiness, and metrics
// endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmwise/crop-advisor/internal/balance"
	"github.com/farmwise/crop-advisor/internal/domain"
	"github.com/farmwise/crop-advisor/internal/engine"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server wires the advisory engine into HTTP.
type Server struct {
	httpServer *http.Server
	engine     *engine.Engine
	estimator  *balance.Estimator
	ready      ReadinessChecker
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes mounted.
func NewServer(addr string, eng *engine.Engine, estimator *balance.Estimator, ready ReadinessChecker, logger *slog.Logger) *Server {
	s := &Server{
		engine:    eng,
		estimator: estimator,
		ready:     ready,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/recommendations", s.handleRecommend)
		api.Get("/groundwater", s.handleGroundwater)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleRecommend runs a full evaluation for the posted farm context.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.engine.Evaluate(r.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrNoLocation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("evaluation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGroundwater returns the standalone groundwater assessment for a
// point.
func (s *Server) handleGroundwater(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	pincode := q.Get("pincode")
	if (errLat != nil || errLon != nil) && pincode == "" {
		writeError(w, http.StatusBadRequest, "lat and lon, or a pincode, are required")
		return
	}

	farm := domain.FarmContext{
		Pincode:  pincode,
		Lat:      lat,
		Lon:      lon,
		SoilType: q.Get("soil"),
	}

	assessment := s.estimator.Estimate(r.Context(), farm, nil)
	writeJSON(w, http.StatusOK, assessment)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
