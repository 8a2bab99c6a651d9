// Package server exposes the simulation engine over HTTP. Submitting a job
// runs the ensemble and returns an opaque handle; derived views (charts,
// tables, key metrics) are fetched by handle afterwards.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"firesim/internal/analysis"
	"firesim/internal/config"
	"firesim/internal/domain"
	"firesim/internal/simulation"
)

// defaultCacheAge bounds how long an abandoned job's results stay cached.
const defaultCacheAge = 30 * time.Minute

// maxSimulationsPerJob caps a single submission.
const maxSimulationsPerJob = 10000

// Server routes simulation jobs and result lookups.
type Server struct {
	router chi.Router
	store  *resultStore
	parser *config.InputParser
	logger simulation.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger attaches a debug logger.
func WithLogger(l simulation.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithCacheAge overrides how long cached results live.
func WithCacheAge(age time.Duration) ServerOption {
	return func(s *Server) { s.store = newResultStore(age) }
}

func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		store:  newResultStore(defaultCacheAge),
		parser: config.NewInputParser(),
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/simulations", s.handleSubmit)
	r.Get("/simulations/{handle}", s.handleDerive)
	r.Delete("/simulations/{handle}", s.handleDrop)
	r.Get("/healthz", s.handleHealth)
	s.router = r
	return s
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SubmitRequest is the POST /simulations payload.
type SubmitRequest struct {
	Inputs         *domain.SimulatorInputs `json:"inputs"`
	BaseSeed       int64                   `json:"baseSeed"`
	NumSimulations int                     `json:"numSimulations"`
	Mode           simulation.Mode         `json:"mode"`
}

// SubmitResponse carries the handle used to fetch derived data.
type SubmitResponse struct {
	Handle string `json:"handle"`
}

// DeriveResponse is everything a client view needs in one fetch.
type DeriveResponse struct {
	Analysis        EnsembleAnalysis       `json:"analysis"`
	TableData       []analysis.EnsembleRow `json:"tableData"`
	YearlyTableData []analysis.YearRow     `json:"yearlyTableData"`
	KeyMetrics      analysis.KeyMetrics    `json:"keyMetrics"`
}

// EnsembleAnalysis is the chart-facing slice of an ensemble.
type EnsembleAnalysis struct {
	NumSimulations int                     `json:"numSimulations"`
	BaseSeed       int64                   `json:"baseSeed"`
	Mode           simulation.Mode         `json:"mode"`
	SuccessRate    decimal.Decimal         `json:"successRate"`
	Bands          []analysis.Series       `json:"bands"`
	FinalBalances  simulation.BalanceStats `json:"finalBalances"`
	PhaseMarkers   []analysis.PhaseMarker  `json:"phaseMarkers,omitempty"`
	MedianTrace    []analysis.Series       `json:"medianTrace,omitempty"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Inputs == nil {
		writeError(w, http.StatusBadRequest, "inputs are required")
		return
	}
	s.parser.ApplyDefaults(req.Inputs)
	if err := s.parser.Validate(req.Inputs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.NumSimulations <= 0 || req.NumSimulations > maxSimulationsPerJob {
		writeError(w, http.StatusBadRequest, "numSimulations must be between 1 and 10000")
		return
	}
	if req.Mode == "" {
		req.Mode = simulation.ModeStochastic
	}

	engine, err := simulation.NewMultiEngine(req.Inputs, simulation.MultiConfig{
		NumSimulations: req.NumSimulations,
		BaseSeed:       req.BaseSeed,
		Mode:           req.Mode,
		Logger:         s.logger,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := engine.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	handle := s.store.Put(result)
	s.logger.Debugf("cached ensemble %s (%d simulations, seed %d)", handle, req.NumSimulations, req.BaseSeed)
	writeJSON(w, http.StatusCreated, SubmitResponse{Handle: handle})
}

func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	ensemble, ok := s.store.Get(handle)
	if !ok {
		writeError(w, http.StatusNotFound, "simulation not found")
		return
	}

	sortMode := analysis.SortFinalPortfolio
	if raw := r.URL.Query().Get("sortMode"); raw != "" {
		sortMode = analysis.SortMode(raw)
		if !analysis.ValidSortMode(sortMode) {
			writeError(w, http.StatusBadRequest, "unknown sort mode: "+raw)
			return
		}
	}

	var category domain.TaxCategory
	if raw := r.URL.Query().Get("category"); raw != "" {
		category = domain.TaxCategory(raw)
		switch category {
		case domain.CategoryCash, domain.CategoryTaxable, domain.CategoryTaxDeferred, domain.CategoryTaxFree:
		default:
			writeError(w, http.StatusBadRequest, "unknown category: "+raw)
			return
		}
	}

	writeJSON(w, http.StatusOK, deriveResponse(ensemble, sortMode, category))
}

// deriveResponse builds every client view from a cached ensemble. Pure
// with respect to the ensemble, so repeated fetches agree byte for byte.
// A non-empty category narrows the median trace to that balance line.
func deriveResponse(ensemble *simulation.MultiResult, sortMode analysis.SortMode, category domain.TaxCategory) DeriveResponse {
	resp := DeriveResponse{
		Analysis: EnsembleAnalysis{
			NumSimulations: ensemble.NumSimulations,
			BaseSeed:       ensemble.BaseSeed,
			Mode:           ensemble.Mode,
			SuccessRate:    ensemble.SuccessRate,
			Bands:          analysis.BandSeries(ensemble),
			FinalBalances:  ensemble.FinalBalances,
		},
		TableData: analysis.EnsembleTable(ensemble, sortMode),
	}
	if len(ensemble.Results) > 0 {
		sorted := analysis.SortResults(ensemble.Results, analysis.SortFinalPortfolio)
		median := sorted[len(sorted)/2]
		resp.YearlyTableData = analysis.YearlyTable(median)
		resp.KeyMetrics = analysis.ComputeKeyMetrics(median)
		resp.Analysis.PhaseMarkers = analysis.PhaseMarkers(median)
		resp.Analysis.MedianTrace = analysis.CategorySeries(median)
		if category != "" {
			name := seriesName(category)
			filtered := resp.Analysis.MedianTrace[:0:0]
			for _, s := range resp.Analysis.MedianTrace {
				if s.Name == name {
					filtered = append(filtered, s)
				}
			}
			resp.Analysis.MedianTrace = filtered
		}
	}
	return resp
}

// seriesName maps a tax category to its chart series name.
func seriesName(category domain.TaxCategory) string {
	switch category {
	case domain.CategoryTaxDeferred:
		return "taxDeferred"
	case domain.CategoryTaxFree:
		return "taxFree"
	default:
		return string(category)
	}
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	s.store.Drop(chi.URLParam(r, "handle"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
