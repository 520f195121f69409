package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sandfort/BlackJackML/internal/sim"
	"github.com/sandfort/BlackJackML/internal/store"
)

// SimulateResponse wraps a synchronous simulation with its stored run.
type SimulateResponse struct {
	RunID  string            `json:"run_id"`
	Result sim.SessionResult `json:"result"`
}

// handleSimulate runs a basic or random policy session synchronously
// and persists the result.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req sim.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body: "+err.Error())
		return
	}
	if req.Policy == sim.PolicyAdaptive {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "adaptive sessions run via /train")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	run := store.NewRun(uuid.NewString(), req)
	if err := s.db.SaveRun(r.Context(), run); err != nil {
		s.logger.Printf("save run: %v", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "failed to persist run")
		return
	}

	result, err := s.runner.Run(r.Context(), req)
	if err != nil {
		run.Status = store.RunStatusFailed
		run.ErrorMessage = err.Error()
		if uerr := s.db.UpdateRun(r.Context(), run); uerr != nil {
			s.logger.Printf("update failed run: %v", uerr)
		}
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		return
	}

	run.ApplySummary(result.Summary)
	if err := s.db.UpdateRun(r.Context(), run); err != nil {
		s.logger.Printf("update run: %v", err)
	}

	s.writeJSON(w, http.StatusOK, SimulateResponse{RunID: run.ID, Result: *result})
}

// TrainResponse acknowledges a background training session.
type TrainResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// handleTrain starts an adaptive training session in the background and
// returns the run ID immediately; progress streams over the live
// websocket endpoint.
func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req sim.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body: "+err.Error())
		return
	}
	req.Policy = sim.PolicyAdaptive
	if err := req.Validate(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	run := store.NewRun(uuid.NewString(), req)
	if err := s.db.SaveRun(r.Context(), run); err != nil {
		s.logger.Printf("save run: %v", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "failed to persist run")
		return
	}

	s.live.Open(run.ID)
	go s.trainInBackground(run, req)

	s.writeJSON(w, http.StatusAccepted, TrainResponse{RunID: run.ID, Status: string(run.Status)})
}

func (s *Server) trainInBackground(run *store.Run, req sim.SessionRequest) {
	defer s.live.Finish(run.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	trainer := sim.NewTrainer(func(cp sim.Checkpoint) {
		s.live.Publish(run.ID, cp)
	})
	result, err := trainer.Train(ctx, req)
	if err != nil {
		run.Status = store.RunStatusFailed
		run.ErrorMessage = err.Error()
		if uerr := s.db.UpdateRun(ctx, run); uerr != nil {
			s.logger.Printf("update failed run: %v", uerr)
		}
		return
	}

	run.ApplySummary(result.Summary)
	if err := s.db.UpdateRun(ctx, run); err != nil {
		s.logger.Printf("update run: %v", err)
	}
	if err := s.db.SaveCheckpoints(ctx, run.ID, result.Checkpoints); err != nil {
		s.logger.Printf("save checkpoints: %v", err)
	}
	s.logger.Printf("training run %s finished: %s", run.ID, result.Summary)
}

// PolicyInfo describes an available policy.
type PolicyInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Trainable   bool   `json:"trainable"`
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, []PolicyInfo{
		{ID: string(sim.PolicyBasic), Description: "fixed basic-strategy lookup table"},
		{ID: string(sim.PolicyRandom), Description: "uniformly random legal action"},
		{ID: string(sim.PolicyAdaptive), Description: "adaptive policy trained from hand outcomes", Trainable: true},
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	query := store.RunsQuery{Policy: r.URL.Query().Get("policy")}
	if page := r.URL.Query().Get("page"); page != "" {
		query.Page, _ = strconv.Atoi(page)
	}
	if perPage := r.URL.Query().Get("perPage"); perPage != "" {
		query.PerPage, _ = strconv.Atoi(perPage)
	}

	list, err := s.db.ListRuns(r.Context(), query)
	if err != nil {
		s.logger.Printf("list runs: %v", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "failed to list runs")
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.db.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetCheckpoints(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.db.GetRun(r.Context(), id); err != nil {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, err.Error())
		return
	}
	cps, err := s.db.GetCheckpoints(r.Context(), id)
	if err != nil {
		s.logger.Printf("get checkpoints: %v", err)
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "failed to load checkpoints")
		return
	}
	if cps == nil {
		cps = []store.Checkpoint{}
	}
	s.writeJSON(w, http.StatusOK, cps)
}
