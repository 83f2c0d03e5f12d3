package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/chart"
	"github.com/couchcryptid/quake-dashboard/internal/dashboard"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxCallbackBody bounds callback request bodies.
const maxCallbackBody = 1 << 20

// Dashboard is the callback surface the server exposes.
type Dashboard interface {
	sharedobs.ReadinessChecker
	Layout() dashboard.Layout
	DisplayControls(choice dashboard.ChartKind) map[string]dashboard.Style
	UpdateFigure(in dashboard.FigureInputs) *chart.Figure
	Figure(in dashboard.FigureInputs) *chart.Figure
	Download(nClicks *int) (*dashboard.File, error)
}

// RenderSize is the pixel size of server-rendered chart images.
type RenderSize struct {
	Width  int
	Height int
}

// Server exposes the dashboard page, its callbacks, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dashboard  Dashboard
	size       RenderSize
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the page, callback, download, chart
// image, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, d Dashboard, size RenderSize, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dashboard: d,
		size:      size,
		metrics:   metrics,
		logger:    logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /callbacks/controls", s.handleControls)
	mux.HandleFunc("POST /callbacks/figure", s.handleFigure)
	mux.HandleFunc("GET /download", s.handleDownload)
	mux.HandleFunc("GET /charts/{file}", s.handleChartImage)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(d))
	mux.Handle("GET /metrics", promhttp.Handler())

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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
