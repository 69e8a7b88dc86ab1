package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zgpcy/stopwatch/internal/config"
	"github.com/zgpcy/stopwatch/internal/logger"
	"github.com/zgpcy/stopwatch/internal/stopwatch"
)

//go:embed templates/index.html
var indexTemplate string

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// HTTP server timeout constants
const (
	DefaultReadTimeout  = 15 * time.Second // Maximum duration for reading the entire request
	DefaultWriteTimeout = 15 * time.Second // Maximum duration before timing out writes of the response
	DefaultIdleTimeout  = 60 * time.Second // Maximum amount of time to wait for the next request
)

// indexPageData holds template data for the index page
type indexPageData struct {
	ID           string
	StatusClass  string
	StatusText   string
	Elapsed      string
	TotalSeconds uint64
}

// Server represents the HTTP server
type Server struct {
	server    *http.Server
	stopwatch *stopwatch.Stopwatch
	logger    *logger.Logger
}

// NewServer creates a new HTTP server controlling sw and serving metrics from gatherer
func NewServer(cfg *config.Config, sw *stopwatch.Stopwatch, gatherer prometheus.Gatherer, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      mux,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		stopwatch: sw,
		logger:    log,
	}

	mux.HandleFunc("/{$}", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/stopwatch", s.handleStatus)
	mux.HandleFunc("/api/stopwatch/start", s.handleControl("start", sw.Start))
	mux.HandleFunc("/api/stopwatch/stop", s.handleControl("stop", sw.Stop))
	mux.HandleFunc("/api/stopwatch/reset", s.handleControl("reset", sw.Reset))

	return s
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// FormatElapsed renders whole seconds as HH:MM:SS
func FormatElapsed(total uint64) string {
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

// handleIndex serves a simple status page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.stopwatch.Snapshot()

	data := indexPageData{
		ID:           snap.ID,
		StatusClass:  "stopped",
		StatusText:   "Stopped",
		Elapsed:      FormatElapsed(snap.TotalSeconds),
		TotalSeconds: snap.TotalSeconds,
	}
	if snap.Running {
		data.StatusClass = "running"
		data.StatusText = "Running"
	}

	w.Header().Set("Content-Type", "text/html")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("Failed to execute index template", "error", err)
	}
}

// handleHealth handles health check requests (always returns 200 for liveness)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
		s.logger.Error("Failed to write health response", "error", err)
	}
}

// handleStatus returns the current stopwatch snapshot
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeSnapshot(w)
}

// handleControl wraps a stopwatch operation as a POST endpoint
func (s *Server) handleControl(name string, op func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		op()
		s.logger.Info("Stopwatch operation", "operation", name, "remote_addr", r.RemoteAddr)
		s.writeSnapshot(w)
	}
}

func (s *Server) writeSnapshot(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.stopwatch.Snapshot()); err != nil {
		s.logger.Error("Failed to write stopwatch response", "error", err)
	}
}
