package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/sandfort/BlackJackML/internal/sim"
	"github.com/sandfort/BlackJackML/internal/store"
)

// HealthResponse reports service health and basic system info.
type HealthResponse struct {
	Status        string     `json:"status"`
	Timestamp     string     `json:"timestamp"`
	EngineVersion string     `json:"engine_version"`
	Uptime        string     `json:"uptime"`
	System        SystemInfo `json:"system"`
}

// SystemInfo contains runtime statistics.
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: sim.EngineVersion,
		Uptime:        time.Since(s.startTime).Round(time.Second).String(),
		System: SystemInfo{
			GoVersion:     runtime.Version(),
			NumGoroutines: runtime.NumGoroutine(),
			NumCPU:        runtime.NumCPU(),
		},
	})
}

// handleReadiness verifies the store answers queries.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.db.ListRuns(ctx, store.RunsQuery{Page: 1, PerPage: 1}); err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeInternal, "store not ready")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
