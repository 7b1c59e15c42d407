// Package server exposes the optimization engine over HTTP. It is a thin
// consumer of solver reports: jobs run named benchmark objectives and the
// handlers only read the resulting Report.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/copyleftdev/TAIGA/internal/benchmarks"
	"github.com/copyleftdev/TAIGA/internal/config"
	"github.com/copyleftdev/TAIGA/internal/metrics"
	"github.com/copyleftdev/TAIGA/internal/optimization"
	"github.com/copyleftdev/TAIGA/internal/optimization/methods"
	"github.com/copyleftdev/TAIGA/internal/optimization/solver"
)

// RunState tracks one optimization job. The state is guarded by the server's
// mutex and can be polled while the run is in flight.
type RunState struct {
	ID          string
	Status      string // "pending", "running", "completed", "failed", "cancelled"
	Method      string
	Benchmark   string
	StartTime   time.Time
	EndTime     *time.Time
	Report      *optimization.Report
	Err         error
	CancelFunc  context.CancelFunc
	LastUpdated time.Time
}

// Server implements the HTTP API of the optimization service.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics

	runs   map[string]*RunState
	runsMu sync.RWMutex
	nextID int
}

// NewServer creates a server instance with the given config, logger, and
// metrics. Metrics may be nil, e.g. in tests.
func NewServer(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		runs:    make(map[string]*RunState),
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/optimize", s.handleOptimize)
		r.Get("/status/{id}", s.handleStatus)
		r.Delete("/optimization/{id}", s.handleCancel)
		r.Get("/catalog", s.handleCatalog)
	})
}

// optimizeRequest is the body of POST /api/v1/optimize.
type optimizeRequest struct {
	Method         string `json:"method"`
	Benchmark      string `json:"benchmark"`
	Dimensions     int    `json:"dimensions"`
	PopulationSize int    `json:"population_size"`
	Seed           uint64 `json:"seed"`
	MaxGenerations int    `json:"max_generations"`
}

// handleOptimize starts an asynchronous optimization job.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if req.Dimensions < 1 {
		req.Dimensions = 2
	}
	if req.PopulationSize < 1 {
		req.PopulationSize = s.cfg.Optimization.PopulationSize
	}
	if req.MaxGenerations < 1 {
		req.MaxGenerations = s.cfg.Optimization.MaxGenerations
	}

	method, err := methods.New(req.Method)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	bench, err := benchmarks.ByName(req.Benchmark, req.Dimensions)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	builder := solver.New(method, bench.Objective).
		Bounds(bench.Bounds).
		PopSize(req.PopulationSize).
		Seed(req.Seed).
		Workers(s.cfg.Optimization.WorkerCount).
		ParetoLimit(s.cfg.Optimization.ParetoLimit).
		Task(solver.MaxGen(req.MaxGenerations)).
		Logger(s.logger)

	// Configuration errors surface synchronously, before the job exists.
	runCtx, cancel := context.WithCancel(context.Background())

	s.runsMu.Lock()
	s.nextID++
	id := fmt.Sprintf("run_%d", s.nextID)
	state := &RunState{
		ID:          id,
		Status:      "pending",
		Method:      method.Name(),
		Benchmark:   req.Benchmark,
		StartTime:   time.Now(),
		CancelFunc:  cancel,
		LastUpdated: time.Now(),
	}
	s.runs[id] = state
	s.runsMu.Unlock()

	if s.metrics != nil {
		s.metrics.RunsStarted.WithLabelValues(method.Name()).Inc()
	}

	go s.runOptimization(runCtx, state, builder)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"run_id": id,
		"status": "pending",
	})
}

// runOptimization executes one job in a goroutine.
func (s *Server) runOptimization(runCtx context.Context, state *RunState, builder *solver.Builder) {
	s.runsMu.Lock()
	state.Status = "running"
	state.LastUpdated = time.Now()
	s.runsMu.Unlock()

	start := time.Now()
	report, err := builder.Solve(runCtx)

	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	now := time.Now()
	state.EndTime = &now
	state.LastUpdated = now
	state.Report = report

	// The Solve outcome decides the terminal status: a cancel request that
	// lands after the run already finished does not demote a completed run.
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		state.Status = "cancelled"
	case err != nil:
		state.Status = "failed"
		state.Err = err
		s.logger.Error("optimization run failed",
			zap.String("run_id", state.ID),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RunsFailed.WithLabelValues(state.Method).Inc()
		}
	default:
		state.Status = "completed"
		if s.metrics != nil {
			s.metrics.RunsCompleted.WithLabelValues(state.Method).Inc()
		}
	}

	if s.metrics != nil && report != nil {
		s.metrics.Evaluations.Add(float64(report.Evaluations))
		s.metrics.RunDuration.WithLabelValues(state.Method).Observe(time.Since(start).Seconds())
		s.metrics.Generations.WithLabelValues(state.Method).Observe(float64(report.Generations))
	}
}

// handleStatus reports the state of one job, including the best solution or
// Pareto front once available.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.runsMu.RLock()
	defer s.runsMu.RUnlock()

	state, exists := s.runs[id]
	if !exists {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("run %q not found", id))
		return
	}

	response := map[string]any{
		"run_id":      state.ID,
		"status":      state.Status,
		"method":      state.Method,
		"benchmark":   state.Benchmark,
		"start_time":  state.StartTime.Format(time.RFC3339),
		"last_update": state.LastUpdated.Format(time.RFC3339),
	}
	if state.EndTime != nil {
		response["end_time"] = state.EndTime.Format(time.RFC3339)
	}
	if state.Err != nil {
		response["error"] = state.Err.Error()
	}
	if rep := state.Report; rep != nil {
		response["generations"] = rep.Generations
		response["evaluations"] = rep.Evaluations
		if rep.Best != nil {
			response["best"] = map[string]any{
				"parameters": rep.Best.Params,
				"fitness":    rep.Best.Fit.Values,
			}
		}
		if rep.Front != nil {
			front := make([]map[string]any, len(rep.Front))
			for i, ind := range rep.Front {
				front[i] = map[string]any{
					"parameters": ind.Params,
					"fitness":    ind.Fit.Values,
				}
			}
			response["front"] = front
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleCancel requests cooperative cancellation of a running job. The
// in-flight generation completes before the run stops.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	state, exists := s.runs[id]
	if !exists {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("run %q not found", id))
		return
	}

	switch state.Status {
	case "completed", "failed", "cancelled":
		s.respondError(w, http.StatusConflict,
			fmt.Errorf("cannot cancel run with status %q", state.Status))
		return
	}

	if state.CancelFunc != nil {
		state.CancelFunc()
	}
	state.LastUpdated = time.Now()

	s.logger.Info("optimization run cancellation requested",
		zap.String("run_id", id),
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "cancellation requested",
	})
}

// handleCatalog lists the available methods and benchmarks.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"methods":    methods.Names(),
		"benchmarks": benchmarks.Names(),
	})
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request error",
		zap.Int("status", status),
		zap.Error(err),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// Close cancels every running job.
func (s *Server) Close() error {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	for _, run := range s.runs {
		if run.CancelFunc != nil {
			run.CancelFunc()
		}
	}
	return nil
}
