package api

import (
	"encoding/json"
	"net/http"
	"time"

	"gerorank/app"
	"gerorank/domain/core"
	"gerorank/domain/mcda"
	"gerorank/internal/config"
	"gerorank/internal/logging"
	"gerorank/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the analysis engine over a JSON API.
type Server struct {
	service  *app.AnalysisService
	runRepo  ports.RunRepository
	defaults config.AnalysisConfig
	logger   *logging.Logger
	router   chi.Router
}

// NewServer builds the server and its routes.
func NewServer(service *app.AnalysisService, runRepo ports.RunRepository, defaults config.AnalysisConfig) *Server {
	s := &Server{
		service:  service,
		runRepo:  runRepo,
		defaults: defaults,
		logger:   logging.New("api"),
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/schemes", s.handleSchemes)
		r.Post("/analysis", s.handleAnalysis)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{runID}", s.handleGetRun)
		r.Get("/runs/{runID}/report", s.handleRunReport)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// schemeView is the wire representation of a weighting scheme.
type schemeView struct {
	Name    string             `json:"name"`
	Weights map[string]float64 `json:"weights"`
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	schemes := mcda.BuiltinSchemes()
	out := make([]schemeView, 0, schemes.Len())
	for _, name := range schemes.Names() {
		scheme, err := schemes.Lookup(name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		out = append(out, toSchemeView(scheme))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody("malformed request body: "+err.Error()))
		return
	}

	domainReq, err := req.toDomain(s.defaults)
	if err != nil {
		s.writeError(w, err)
		return
	}

	run, err := s.service.Run(r.Context(), domainReq)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Infof("analysis run %s completed in %d ms", run.ID, run.RuntimeMs)
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.runRepo.List(r.Context(), 50)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "runID")
	run, err := s.runRepo.GetByID(r.Context(), core.RunID(id))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func toSchemeView(scheme mcda.WeightScheme) schemeView {
	weights := make(map[string]float64, mcda.NumDomains)
	for i, d := range mcda.AllDomains {
		weights[d.String()] = scheme.Weights[i]
	}
	return schemeView{Name: scheme.Name, Weights: weights}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Errorf("failed to encode response: %v", err)
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// writeError maps domain errors onto HTTP statuses: validation and
// configuration problems are client errors, missing resources 404,
// everything else 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidationError(err), core.IsConfigurationError(err):
		s.writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case core.IsNotFoundError(err):
		s.writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	default:
		s.logger.Errorf("internal error: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
