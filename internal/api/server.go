// Package api exposes signal generation and backtests over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-signals/internal/backtest"
	"github.com/rxtech-lab/argo-signals/internal/config"
	"github.com/rxtech-lab/argo-signals/internal/datasource"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/internal/version"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"go.uber.org/zap"
)

// Server serves the backtest API.
type Server struct {
	fetcher  datasource.Fetcher
	defaults strategy.Configs
	log      *logger.Logger
	validate *validator.Validate

	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a server that loads prices from fetcher and fills unset strategy
// parameters from defaults.
func NewServer(fetcher datasource.Fetcher, defaults strategy.Configs, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Server{
		fetcher:  fetcher,
		defaults: defaults,
		log:      log.Named("api"),
		validate: validator.New(),
	}
}

// Router returns the HTTP routes of the server.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/v1/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/v1/strategies", s.handleStrategies).Methods("GET")
	router.HandleFunc("/v1/schema", s.handleSchema).Methods("GET")
	router.HandleFunc("/v1/backtests", s.handleBacktest).Methods("POST")

	return router
}

// Start listens on addr and serves in the background. It returns the bound address.
func (s *Server) Start(addr string) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to listen on %s", addr)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("server stopped", zap.Error(err))
		}
	}()

	s.log.Info("listening", zap.String("addr", listener.Addr().String()))

	return listener.Addr().String(), nil
}

// Shutdown stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version.GetVersion()})
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	response := make([]strategyInfo, 0, len(types.AllStrategies))

	for _, name := range types.AllStrategies {
		st, err := strategy.New(name, s.defaults)
		if err != nil {
			s.writeError(w, err)
			return
		}

		response = append(response, strategyInfo{
			Name:       name,
			Domain:     st.Domain(),
			MinBars:    st.MinBars(),
			Parameters: s.defaults.For(name),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	cfg := config.Default()

	schema, err := cfg.GenerateSchema()
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var req backtestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid request body", err))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid request", err))
		return
	}

	result, series, err := s.runBacktest(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newBacktestResponse(series, result, req.IncludeSignals))
}

func (s *Server) runBacktest(ctx context.Context, req backtestRequest) (*backtest.RunResult, types.PriceSeries, error) {
	cfgs := s.defaults
	if len(req.Parameters) > 0 {
		if err := json.Unmarshal(req.Parameters, &cfgs); err != nil {
			return nil, types.PriceSeries{}, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy parameters", err)
		}
	}

	st, err := strategy.New(req.Strategy, cfgs)
	if err != nil {
		return nil, types.PriceSeries{}, err
	}

	opts := backtest.DefaultOptions()
	if req.InitialCapital != 0 {
		opts.InitialCapital = req.InitialCapital
	}

	if req.Sizing != nil {
		opts.Sizing, err = backtest.GetSizingPolicy(*req.Sizing)
		if err != nil {
			return nil, types.PriceSeries{}, err
		}
	}

	var start, end time.Time
	if req.Start != nil {
		start = *req.Start
	}

	if req.End != nil {
		end = *req.End
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, types.PriceSeries{}, errors.New(errors.ErrCodeInvalidParameter, "end is before start")
	}

	series, err := s.fetcher.Fetch(ctx, req.Symbol, start, end)
	if err != nil {
		return nil, types.PriceSeries{}, err
	}

	result, err := backtest.Run(series, st, opts)
	if err != nil {
		return nil, types.PriceSeries{}, err
	}

	s.log.Info("backtest finished",
		zap.String("symbol", req.Symbol),
		zap.String("strategy", string(req.Strategy)),
		zap.Int("bars", series.Len()),
		zap.Float64("final_value", result.Metrics.FinalValue),
	)

	return result, series, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}

	writeJSON(w, status, errorResponse{
		Code:  int(errors.GetCode(err)),
		Error: err.Error(),
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	code := errors.GetCode(err)

	switch {
	case code.IsValidation():
		return http.StatusBadRequest
	case code.IsNotFound():
		return http.StatusNotFound
	case code == errors.ErrCodeUnsupportedStrategy, code == errors.ErrCodeStrategyConfigError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
