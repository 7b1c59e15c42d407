package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copyleftdev/TAIGA/internal/benchmarks"
	"github.com/copyleftdev/TAIGA/internal/config"
	"github.com/copyleftdev/TAIGA/internal/optimization/methods"
	"github.com/copyleftdev/TAIGA/internal/optimization/solver"
)

// testConfig creates a test configuration with default values
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Environment: "test",
	}

	cfg.HTTP.Port = 8080
	cfg.HTTP.ReadTimeout = 30 * time.Second
	cfg.HTTP.WriteTimeout = 30 * time.Second
	cfg.HTTP.IdleTimeout = 120 * time.Second
	cfg.HTTP.ShutdownTimeout = 30 * time.Second

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"
	cfg.Logging.Output = "stdout"

	cfg.Optimization.WorkerCount = 1
	cfg.Optimization.PopulationSize = 20
	cfg.Optimization.MaxGenerations = 10
	cfg.Optimization.ParetoLimit = 10

	return cfg
}

func testServer(t *testing.T) (*Server, chi.Router) {
	t.Helper()

	srv := NewServer(testConfig(t), zap.NewNop(), nil)
	t.Cleanup(func() { srv.Close() })

	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return srv, r
}

func postOptimize(t *testing.T, r chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize",
		bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getStatus(t *testing.T, r chi.Router, id string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status/"+id, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestNewServer(t *testing.T) {
	srv, _ := testServer(t)
	assert.NotNil(t, srv)
}

func TestCatalog(t *testing.T) {
	_, r := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Methods    []string `json:"methods"`
		Benchmarks []string `json:"benchmarks"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Methods, "de")
	assert.Contains(t, body.Methods, "pso")
	assert.Contains(t, body.Benchmarks, "sphere")
	assert.Contains(t, body.Benchmarks, "zdt1")
}

func TestOptimizeRejectsBadRequests(t *testing.T) {
	_, r := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"method": `},
		{"unknown method", `{"method": "annealing", "benchmark": "sphere"}`},
		{"unknown benchmark", `{"method": "de", "benchmark": "griewank"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postOptimize(t, r, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestOptimizeHappyPath(t *testing.T) {
	_, r := testServer(t)

	rec := postOptimize(t, r,
		`{"method": "de", "benchmark": "sphere", "dimensions": 2, "seed": 7, "max_generations": 5}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var accepted map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&accepted))
	id := accepted["run_id"]
	require.NotEmpty(t, id)

	// The run is asynchronous; poll until it reaches a terminal state.
	deadline := time.After(10 * time.Second)
	for {
		code, body := getStatus(t, r, id)
		require.Equal(t, http.StatusOK, code)

		switch body["status"] {
		case "completed":
			assert.Equal(t, "de", body["method"])
			assert.Equal(t, "sphere", body["benchmark"])
			assert.EqualValues(t, 5, body["generations"])
			best, ok := body["best"].(map[string]any)
			require.True(t, ok, "completed run must report a best solution")
			assert.Len(t, best["parameters"], 2)
			return
		case "failed", "cancelled":
			t.Fatalf("run ended with status %v: %v", body["status"], body["error"])
		}

		select {
		case <-deadline:
			t.Fatal("run did not complete in time")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestStatusUnknownRun(t *testing.T) {
	_, r := testServer(t)

	code, body := getStatus(t, r, "run_999")
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, body["error"])
}

func TestCancelUnknownRun(t *testing.T) {
	_, r := testServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/optimization/run_999", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelFinishedRunConflicts(t *testing.T) {
	_, r := testServer(t)

	rec := postOptimize(t, r,
		`{"method": "de", "benchmark": "sphere", "dimensions": 2, "max_generations": 1}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var accepted map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&accepted))
	id := accepted["run_id"]

	deadline := time.After(10 * time.Second)
	for {
		_, body := getStatus(t, r, id)
		if body["status"] == "completed" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("run did not complete in time")
		case <-time.After(20 * time.Millisecond):
		}
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/optimization/"+id, nil)
	cancelRec := httptest.NewRecorder()
	r.ServeHTTP(cancelRec, req)
	assert.Equal(t, http.StatusConflict, cancelRec.Code)
}

// TestCancelAfterFinishKeepsCompletedStatus checks the race where a cancel
// request lands only after Solve already returned successfully: the run's
// own outcome decides the terminal status, not the late cancellation.
func TestCancelAfterFinishKeepsCompletedStatus(t *testing.T) {
	srv, _ := testServer(t)

	bench := benchmarks.Sphere(2)
	builder := solver.New(methods.NewDE(), bench.Objective).
		Bounds(bench.Bounds).
		PopSize(10).
		Task(solver.MaxGen(0))

	runCtx, cancel := context.WithCancel(context.Background())
	cancel()

	state := &RunState{ID: "run_1", Status: "pending", Method: "de", Benchmark: "sphere"}
	srv.runOptimization(runCtx, state, builder)

	assert.Equal(t, "completed", state.Status)
	assert.NoError(t, state.Err)
	require.NotNil(t, state.Report)
	assert.NotNil(t, state.Report.Best)
}

func TestMultiObjectiveRunReportsFront(t *testing.T) {
	_, r := testServer(t)

	rec := postOptimize(t, r,
		`{"method": "rga", "benchmark": "schaffer", "dimensions": 1, "seed": 9, "max_generations": 10}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var accepted map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&accepted))
	id := accepted["run_id"]

	deadline := time.After(10 * time.Second)
	for {
		_, body := getStatus(t, r, id)
		switch body["status"] {
		case "completed":
			front, ok := body["front"].([]any)
			require.True(t, ok, "multi-objective run must report a front")
			assert.NotEmpty(t, front)
			assert.Nil(t, body["best"])
			return
		case "failed", "cancelled":
			t.Fatalf("run ended with status %v: %v", body["status"], body["error"])
		}
		select {
		case <-deadline:
			t.Fatal("run did not complete in time")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
