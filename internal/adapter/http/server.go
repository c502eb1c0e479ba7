// Package http exposes the service's operational and data endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/reedmaris/bls-data-service/internal/present"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// DatasetProvider hands out the most recent dataset, if one has been built.
type DatasetProvider interface {
	CurrentDataset() (domain.Dataset, bool)
}

// Server exposes health, readiness, metrics, and dataset HTTP endpoints.
type Server struct {
	httpServer *http.Server
	datasets   DatasetProvider
	logger     *slog.Logger
}

// NewServer creates an HTTP server with operational routes plus the
// /v1/table, /v1/locations, and /v1/chart data routes.
func NewServer(addr string, ready ReadinessChecker, datasets DatasetProvider, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		datasets: datasets,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/table", s.handleTable)
	mux.HandleFunc("GET /v1/locations", s.handleLocations)
	mux.HandleFunc("GET /v1/chart", s.handleChart)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleTable serves the canonical table. Query parameters:
//
//	names=short|resolved|ids  column naming, default short
//	order=asc|desc            row order, default asc
//	transpose=true            swap rows and columns
//	format=json|csv|xlsx      output encoding, default json
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasets.CurrentDataset()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no dataset available yet"})
		return
	}

	opts, locations, err := presentOptions(r, ds.Locations)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view := present.Format(ds.Table, locations, opts)

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, tableResponse{
			Table:     view,
			FetchedAt: ds.FetchedAt,
		})
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		if err := present.WriteCSV(w, view, "date"); err != nil {
			s.logger.Error("write csv response", "error", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="table.xlsx"`)
		if err := present.WriteXLSX(w, view, "date"); err != nil {
			s.logger.Error("write xlsx response", "error", err)
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown format"})
	}
}

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	ds, ok := s.datasets.CurrentDataset()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no dataset available yet"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": ds.Locations})
}

// handleChart renders the table as an HTML chart. kind=line|bar, default line;
// the table parameters (names, order, transpose) apply as well.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasets.CurrentDataset()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no dataset available yet"})
		return
	}

	opts, locations, err := presentOptions(r, ds.Locations)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view := present.Format(ds.Table, locations, opts)

	kind := present.ChartKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = present.ChartLine
	}
	chart, err := present.BuildChart(kind, r.URL.Query().Get("title"), view)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.Render(w); err != nil {
		s.logger.Error("render chart", "error", err)
	}
}

// presentOptions translates query parameters into view options. For
// names=ids it returns a nil location map, so Format keeps the series
// identifiers as column names.
func presentOptions(r *http.Request, locations map[string]string) (present.Options, map[string]string, error) {
	q := r.URL.Query()
	opts := present.Options{}

	switch q.Get("names") {
	case "", "short":
		opts.ShortNames = true
	case "resolved":
	case "ids":
		locations = nil
	default:
		return present.Options{}, nil, errBadParam{"names"}
	}

	switch q.Get("order") {
	case "", "asc":
	case "desc":
		opts.Descending = true
	default:
		return present.Options{}, nil, errBadParam{"order"}
	}

	switch q.Get("transpose") {
	case "", "false":
	case "true":
		opts.Transpose = true
	default:
		return present.Options{}, nil, errBadParam{"transpose"}
	}

	return opts, locations, nil
}

type errBadParam struct {
	name string
}

func (e errBadParam) Error() string {
	return "invalid value for parameter " + e.name
}

type tableResponse struct {
	Table     domain.Table `json:"table"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
