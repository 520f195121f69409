package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sandfort/BlackJackML/internal/sim"
	"github.com/sandfort/BlackJackML/internal/store"
)

// Server exposes the simulation engine over HTTP.
type Server struct {
	db        store.DB
	runner    *sim.Runner
	live      *liveHub
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates an API server over the given store.
func NewServer(db store.DB) *Server {
	return &Server{
		db:        db,
		runner:    sim.NewRunner(),
		live:      newLiveHub(),
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/simulate", s.handleSimulate)
		r.Post("/train", s.handleTrain)
		r.Get("/policies", s.handleListPolicies)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/runs/{id}/checkpoints", s.handleGetCheckpoints)
		r.Get("/runs/{id}/live", s.handleLive)
	})

	return r
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", sim.EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("failed to encode response: %v", err)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	s.writeJSON(w, status, newEngineError(r, errType, message))
}
