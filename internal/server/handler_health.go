package server

import (
	"net/http"
	"runtime"
	"time"
)

// Version is the API server version reported by /health.
const Version = "0.1.0"

type healthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Uptime     string `json:"uptime"`
	Store      string `json:"store"`
	Quantum    int    `json:"default_time_quantum"`
	MaxTime    int    `json:"default_max_time"`
	StoredRuns int    `json:"stored_runs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	storeStatus := "ok"
	_, total, err := s.store.ListRuns(r.Context(), listOne)
	if err != nil {
		s.logger.Warn("health: store check failed", "error", err)
		storeStatus = "error"
	}

	respondOK(w, reqID, healthResponse{
		Status:     "healthy",
		Version:    Version,
		GoVersion:  runtime.Version(),
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
		Store:      storeStatus,
		Quantum:    s.config.Simulation.TimeQuantum,
		MaxTime:    s.config.Simulation.MaxTime,
		StoredRuns: total,
	})
}
