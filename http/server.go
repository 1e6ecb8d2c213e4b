package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pagelens/pagelens"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultAddr is the address the server listens on unless configured
// otherwise.
const DefaultAddr = ":8080"

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server exposes the scraper over HTTP: a single POST analysis endpoint
// plus health and metrics endpoints. All responses are JSON and carry
// permissive CORS headers so browser dashboards can call it directly.
type Server struct {
	server *http.Server

	scraper pagelens.Scraper
	logger  *slog.Logger

	registry    *prometheus.Registry
	runsTotal   prometheus.Counter
	errorsTotal prometheus.Counter
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAddr sets the listen address. Defaults to DefaultAddr.
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		s.server.Addr = addr
	}
}

// NewServer creates a Server around the given scraper.
func NewServer(scraper pagelens.Scraper, opts ...ServerOption) *Server {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	s := &Server{
		server:   &http.Server{Addr: DefaultAddr},
		scraper:  scraper,
		logger:   slog.Default(),
		registry: registry,
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pagelens_runs_total",
			Help: "Total number of scraping runs started.",
		}),
		errorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pagelens_run_errors_total",
			Help: "Total number of scraping runs that failed.",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	s.server.Handler = mux

	return s
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", slog.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Serve serves on an existing listener. Used by tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.server.Serve(ln)
}

// Handler returns the server's HTTP handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// errorResponse is the failure payload shape.
type errorResponse struct {
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		s.writeError(w, pagelens.Errorf(pagelens.EINVALID, "method %s not allowed", r.Method))
		return
	}

	var req pagelens.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, pagelens.Errorf(pagelens.EINVALID, "invalid request body: %v", err))
		return
	}

	s.runsTotal.Inc()
	result, err := s.scraper.Scrape(r.Context(), &req)
	if err != nil {
		s.errorsTotal.Inc()
		s.logger.Error("scrape failed",
			slog.String("url", req.URL),
			slog.String("code", pagelens.ErrorCode(err)),
			slog.String("error", pagelens.ErrorMessage(err)))
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError sends the single structured failure payload. Every failed
// run maps to a 500 with the error and its details in the body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:     pagelens.ErrorCode(err),
		Details:   pagelens.ErrorMessage(err),
		Timestamp: time.Now().UTC(),
		Success:   false,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", slog.String("error", err.Error()))
	}
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
