// Package server exposes the backtest engine over a thin JSON API. It serves
// the result record consumed by external dashboards; rendering stays with the
// caller.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/alphaforge-lab/swingtrader/internal/backtest"
	"github.com/alphaforge-lab/swingtrader/internal/logger"
	"github.com/alphaforge-lab/swingtrader/internal/types"
	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// PriceLoader loads the close series for a symbol.
type PriceLoader interface {
	ReadPriceSeries(symbol string) (types.PriceSeries, error)
}

// Server routes backtest requests to the engine.
type Server struct {
	engine *backtest.Engine
	loader PriceLoader
	logger *logger.Logger
}

// NewServer creates a Server. A nil logger falls back to a no-op logger.
func NewServer(engine *backtest.Engine, loader PriceLoader, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Server{
		engine: engine,
		loader: loader,
		logger: log,
	}
}

// Router returns the configured HTTP router.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/api/v1/parameters/schema", s.handleSchema).Methods("GET")
	router.HandleFunc("/api/v1/parameters/defaults", s.handleDefaults).Methods("GET")
	router.HandleFunc("/api/v1/backtest", s.handleBacktest).Methods("POST")

	return router
}

// ListenAndServe serves the API on the given address until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Serving backtest API", zap.String("addr", addr))

	return httpServer.ListenAndServe()
}

// BacktestRequest is the body of a POST /api/v1/backtest call. Parameters is
// optional; absent fields fall back to the default parameter set.
type BacktestRequest struct {
	Symbol     string            `json:"symbol"`
	Parameters *types.Parameters `json:"parameters,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := types.ParametersJSONSchema()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(schema))
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.DefaultParameters())
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidParameters, "invalid request body", err))

		return
	}

	if req.Symbol == "" {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidParameters, "symbol is required"))

		return
	}

	params := types.DefaultParameters()
	if req.Parameters != nil {
		params = *req.Parameters
	}

	prices, err := s.loader.ReadPriceSeries(req.Symbol)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)

		return
	}

	result, err := s.engine.Run(req.Symbol, prices, params)
	if err != nil {
		s.writeError(w, statusForError(err), err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

// statusForError maps engine error codes onto HTTP statuses.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidParameters, errors.ErrCodeInvalidStartDate, errors.ErrCodeInvalidPriceSeries:
		return http.StatusBadRequest
	case errors.ErrCodeDataUnavailable:
		return http.StatusNotFound
	case errors.ErrCodeInsufficientHistory, errors.ErrCodeEmptyRange:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("Request failed", zap.Error(err), zap.Int("status", status))
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: int(errors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// The status line is already written; nothing more to do
		return
	}
}
