package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warpmining/procopt/internal/config"
	"github.com/warpmining/procopt/internal/logging"
	"github.com/warpmining/procopt/internal/optimization"
)

// Logger defines the logging interface used by the server
// This allows us to be flexible with our logging implementation
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

// Server is the HTTP facade over the optimization session. All calls
// are synchronous: a run is bounded by its fixed iteration count, so
// there is no job state to track.
type Server struct {
	cfg     *config.Config
	logger  Logger
	session *optimization.Session
	metrics *Metrics
}

// NewServer creates a server around an optimization session. The
// metrics may be nil when instrumentation is not wanted.
func NewServer(cfg *config.Config, logger Logger, session *optimization.Session, metrics *Metrics) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		session: session,
		metrics: metrics,
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/optimize", s.handleOptimize)
		r.Post("/optimize/multi", s.handleMultiObjective)
		r.Get("/history", s.handleHistory)
		r.Get("/algorithms", s.handleAlgorithms)
	})
}

// optimizeRequest is the body accepted by POST /api/v1/optimize.
type optimizeRequest struct {
	Parameters optimization.ParameterMap `json:"parameters"`
	Objective  string                    `json:"objective"`
}

// multiObjectiveRequest is the body accepted by POST /api/v1/optimize/multi.
type multiObjectiveRequest struct {
	Parameters optimization.ParameterMap `json:"parameters"`
	Objectives []string                  `json:"objectives"`
	Weights    []float64                 `json:"weights,omitempty"`
}

// handleOptimize runs a single-objective optimization and returns the
// full result record.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Parameters) == 0 {
		s.respondWithError(w, http.StatusBadRequest, "parameters are required")
		return
	}

	result, err := s.session.Optimize(req.Parameters, req.Objective)
	if err != nil {
		var baseline *optimization.InvalidBaselineError
		if errors.As(err, &baseline) {
			s.respondWithError(w, http.StatusUnprocessableEntity, baseline.Error())
			return
		}
		s.logger.Error("Optimization failed", map[string]interface{}{
			"objective": req.Objective,
			"error":     err.Error(),
		})
		s.respondWithError(w, http.StatusInternalServerError, "optimization failed")
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveRun(result)
	}
	s.respondWithJSON(w, http.StatusOK, result)
}

// handleMultiObjective runs a weighted multi-objective optimization.
func (s *Server) handleMultiObjective(w http.ResponseWriter, r *http.Request) {
	var req multiObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Parameters) == 0 {
		s.respondWithError(w, http.StatusBadRequest, "parameters are required")
		return
	}

	result, err := s.session.MultiObjectiveOptimize(req.Parameters, req.Objectives, req.Weights)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveMultiObjectiveRun(result)
	}
	s.respondWithJSON(w, http.StatusOK, result)
}

// handleHistory returns a read-only snapshot of the recorded runs.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := s.session.History()
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(history),
		"history": history,
	})
}

// handleAlgorithms returns the static algorithm profiles.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, optimization.AlgorithmProfiles())
}

func (s *Server) respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, status int, message string) {
	s.logger.Error("Request error", map[string]interface{}{
		"status":  status,
		"message": message,
	})
	s.respondWithJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
