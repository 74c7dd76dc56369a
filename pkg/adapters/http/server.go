// Package http serves the MCP transports next to the health, info, metrics and dashboard
// endpoints on a single chi router.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/applitest/testrunner-mcp/internal/logging"
	"github.com/applitest/testrunner-mcp/pkg/adapters/mcp"
	"github.com/applitest/testrunner-mcp/pkg/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Endpoint paths.
const (
	PathMCP       = "/mcp"
	PathSSE       = "/sse"
	PathMessage   = "/message"
	PathHealth    = "/health"
	PathInfo      = "/api/info"
	PathMetrics   = "/metrics"
	PathDashboard = "/"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

type handler struct {
	info      catalog.Info
	baseURL   string
	gatherer  prometheus.Gatherer
	now       func() time.Time
	startedAt time.Time
	logger    *slog.Logger
}

// Option configures the handler.
type Option func(*handler)

// WithLogger configures a logger for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(h *handler) {
		h.logger = logger
	}
}

// WithBaseURL sets the public URL used by the SSE transport and the dashboard snippet.
func WithBaseURL(url string) Option {
	return func(h *handler) {
		h.baseURL = url
	}
}

// WithGatherer selects the metrics exposed at /metrics. Defaults to the global registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(h *handler) {
		h.gatherer = g
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *handler) {
		h.now = now
	}
}

// NewHandler creates the HTTP handler for server.
func NewHandler(server *mcp.Server, info catalog.Info, opts ...Option) http.Handler {
	h := &handler{
		info:     info,
		baseURL:  "http://localhost:3000",
		gatherer: prometheus.DefaultGatherer,
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startedAt = h.now()

	sse := server.SSEServer(h.baseURL)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Handle(PathMCP, server.StreamableHTTPHandler())
	r.Handle(PathSSE, sse.SSEHandler())
	r.Handle(PathMessage, sse.MessageHandler())
	r.Get(PathHealth, h.health)
	r.Get(PathInfo, h.apiInfo)
	r.Handle(PathMetrics, promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	r.Get(PathDashboard, h.dashboard)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Mcp-Session-Id, Mcp-Protocol-Version")
		w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := h.now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Server    string `json:"server"`
	Version   string `json:"version"`
}

type infoResponse struct {
	Server    catalog.Info      `json:"server"`
	Endpoints map[string]string `json:"endpoints"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, healthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Server:    h.info.Name,
		Version:   h.info.Version,
	})
}

func (h *handler) apiInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, infoResponse{
		Server: h.info,
		Endpoints: map[string]string{
			"mcp":       PathMCP,
			"sse":       PathSSE,
			"health":    PathHealth,
			"info":      PathInfo,
			"metrics":   PathMetrics,
			"dashboard": PathDashboard,
		},
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}

// Serve runs handler on addr until ctx is canceled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("MCP Server listening (HTTP)", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		logger.Info("Shutdown signal received, shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}
