package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/shelter-directory/internal/domain"
	"github.com/couchcryptid/shelter-directory/internal/observability"
)

// DataPath is where the listing page fetches the record collection.
const DataPath = "/data/facilities.json"

// RecordPath serves one record by slug, for detail pages.
const RecordPath = "/data/facilities/{slug}"

// Collection is the record store as seen by the host.
type Collection interface {
	sharedobs.ReadinessChecker
	All() []domain.Facility
	Lookup(slug string) (domain.Facility, bool)
	Err() error
}

// Server hosts the generated site, the record collection, and the health,
// readiness and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server. siteDir is served as static files at /.
func NewServer(addr, siteDir string, records Collection, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(records))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET "+DataPath, handleData(records, metrics, logger))
	mux.HandleFunc("GET "+RecordPath, handleRecord(records, metrics))
	mux.Handle("GET /", http.FileServer(http.Dir(siteDir)))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleData re-encodes the loaded records in the input schema. The file on
// disk is never served directly so that a payload the store rejected is
// never handed to the page.
func handleData(records Collection, metrics *observability.Metrics, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if err := records.Err(); err != nil {
			metrics.DataRequests.WithLabelValues("unavailable").Inc()
			logger.Warn("record collection unavailable", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
		metrics.DataRequests.WithLabelValues("served").Inc()
		w.Header().Set("Cache-Control", "no-cache")
		writeJSON(w, http.StatusOK, records.All())
	}
}

// handleRecord returns the record whose slug matches the path.
func handleRecord(records Collection, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := records.Err(); err != nil {
			metrics.DataRequests.WithLabelValues("unavailable").Inc()
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
		slug := r.PathValue("slug")
		f, ok := records.Lookup(slug)
		if !ok {
			metrics.DataRequests.WithLabelValues("not_found").Inc()
			writeJSON(w, http.StatusNotFound, map[string]string{
				"status": "not found",
				"slug":   slug,
			})
			return
		}
		metrics.DataRequests.WithLabelValues("served").Inc()
		writeJSON(w, http.StatusOK, f)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
