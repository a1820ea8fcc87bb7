package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gerorank/app"
	"gerorank/domain/simulation"
	"gerorank/internal/config"
	"gerorank/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *testkit.InMemoryRunRepository) {
	t.Helper()
	kit := testkit.NewTestKit()
	repo := testkit.NewInMemoryRunRepository()
	service := app.NewAnalysisService(kit.RNGAdapter(), repo)
	defaults := config.AnalysisConfig{
		Scheme:           "baseline",
		IntervalParams:   simulation.IntervalParams{Trials: 200, Jitter: 0.5, Seed: 42, ClampScores: true},
		RobustnessParams: simulation.RobustnessParams{Trials: 200, Perturbation: 0.05, Seed: 123},
	}
	return NewServer(service, repo, defaults), repo
}

func analysisBody() map[string]interface{} {
	return map[string]interface{}{
		"scheme": "baseline",
		"interventions": []map[string]interface{}{
			{
				"name": "Rapamycin",
				"scores": map[string]float64{
					"lifespan_efficacy":      5,
					"healthspan_efficacy":    4,
					"mechanism_conservation": 5,
					"human_trial_evidence":   3,
					"safety_tolerability":    4,
					"cost_accessibility":     4,
				},
			},
			{
				"name": "Metformin",
				"scores": map[string]float64{
					"lifespan_efficacy":      3,
					"healthspan_efficacy":    3,
					"mechanism_conservation": 4,
					"human_trial_evidence":   5,
					"safety_tolerability":    5,
					"cost_accessibility":     5,
				},
			},
		},
	}
}

func postJSON(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func getPath(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := getPath(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestGetSchemes(t *testing.T) {
	s, _ := newTestServer(t)
	rec := getPath(t, s, "/api/schemes")
	require.Equal(t, http.StatusOK, rec.Code)

	var schemes []schemeView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schemes))
	require.Len(t, schemes, 4)

	names := make([]string, 0, len(schemes))
	for _, sv := range schemes {
		names = append(names, sv.Name)
		assert.Len(t, sv.Weights, 6)
	}
	assert.Contains(t, names, "baseline")
	assert.Contains(t, names, "regulator_focused")
}

func TestPostAnalysis(t *testing.T) {
	s, repo := newTestServer(t)
	rec := postJSON(t, s, "/api/analysis", analysisBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var run simulation.AnalysisRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "baseline", run.Scheme)
	assert.Len(t, run.Baseline, 2)
	assert.Len(t, run.Intervals, 2)
	assert.Len(t, run.Robustness, 2)

	// Run is persisted and retrievable
	stored, err := repo.GetByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Fingerprint, stored.Fingerprint)
}

func TestPostAnalysisParamOverrides(t *testing.T) {
	s, _ := newTestServer(t)
	body := analysisBody()
	body["trials"] = 50
	body["jitter"] = 0.25
	rec := postJSON(t, s, "/api/analysis", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var run simulation.AnalysisRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, 50, run.IntervalParams.Trials)
	assert.Equal(t, 0.25, run.IntervalParams.Jitter)
	assert.Equal(t, 50, run.RobustnessParams.Trials)
}

func TestPostAnalysisIndependentTrialCounts(t *testing.T) {
	s, _ := newTestServer(t)
	body := analysisBody()
	body["interval_trials"] = 30
	body["robustness_trials"] = 60
	rec := postJSON(t, s, "/api/analysis", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var run simulation.AnalysisRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, 30, run.IntervalParams.Trials)
	assert.Equal(t, 60, run.RobustnessParams.Trials)

	// Per-analysis counts win over the shared shorthand.
	body = analysisBody()
	body["trials"] = 40
	body["robustness_trials"] = 80
	rec = postJSON(t, s, "/api/analysis", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, 40, run.IntervalParams.Trials)
	assert.Equal(t, 80, run.RobustnessParams.Trials)
}

func TestPostAnalysisExtraScheme(t *testing.T) {
	s, _ := newTestServer(t)
	body := analysisBody()
	body["scheme"] = "uniform"
	body["extra_schemes"] = []map[string]interface{}{
		{
			"name": "uniform",
			"weights": map[string]float64{
				"lifespan_efficacy":      1.0 / 6,
				"healthspan_efficacy":    1.0 / 6,
				"mechanism_conservation": 1.0 / 6,
				"human_trial_evidence":   1.0 / 6,
				"safety_tolerability":    1.0 / 6,
				"cost_accessibility":     1.0 / 6,
			},
		},
	}
	rec := postJSON(t, s, "/api/analysis", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var run simulation.AnalysisRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, "uniform", run.Scheme)
}

func TestPostAnalysisValidationErrors(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("score out of range", func(t *testing.T) {
		body := analysisBody()
		body["interventions"].([]map[string]interface{})[0]["scores"].(map[string]float64)["lifespan_efficacy"] = 9
		rec := postJSON(t, s, "/api/analysis", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "out of range")
	})

	t.Run("missing domain", func(t *testing.T) {
		body := analysisBody()
		delete(body["interventions"].([]map[string]interface{})[0]["scores"].(map[string]float64), "safety_tolerability")
		rec := postJSON(t, s, "/api/analysis", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad weight sum", func(t *testing.T) {
		body := analysisBody()
		body["scheme"] = "custom"
		body["extra_schemes"] = []map[string]interface{}{
			{
				"name": "custom",
				"weights": map[string]float64{
					"lifespan_efficacy":      0.5,
					"healthspan_efficacy":    0.5,
					"mechanism_conservation": 0.5,
					"human_trial_evidence":   0.1,
					"safety_tolerability":    0.1,
					"cost_accessibility":     0.1,
				},
			},
		}
		rec := postJSON(t, s, "/api/analysis", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		body := analysisBody()
		body["scheme"] = "nonexistent"
		rec := postJSON(t, s, "/api/analysis", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRunAndReport(t *testing.T) {
	s, _ := newTestServer(t)
	rec := postJSON(t, s, "/api/analysis", analysisBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var run simulation.AnalysisRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))

	t.Run("get run", func(t *testing.T) {
		rec := getPath(t, s, "/api/runs/"+string(run.ID))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), string(run.Fingerprint))
	})

	t.Run("list runs", func(t *testing.T) {
		rec := getPath(t, s, "/api/runs")
		require.Equal(t, http.StatusOK, rec.Code)
		var runs []*simulation.AnalysisRun
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
		assert.NotEmpty(t, runs)
	})

	t.Run("markdown report", func(t *testing.T) {
		rec := getPath(t, s, "/api/runs/"+string(run.ID)+"/report")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "markdown")
		assert.Contains(t, rec.Body.String(), "# Ranking analysis")
	})

	t.Run("html report", func(t *testing.T) {
		rec := getPath(t, s, "/api/runs/"+string(run.ID)+"/report?format=html")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "html")
		assert.Contains(t, rec.Body.String(), "<table>")
	})

	t.Run("unknown run", func(t *testing.T) {
		rec := getPath(t, s, "/api/runs/does-not-exist")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
