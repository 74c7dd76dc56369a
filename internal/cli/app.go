// Package cli wires configuration, engine, registry, dispatcher and transports into a runnable
// application for the command-line entry point.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/applitest/testrunner-mcp/internal/config"
	httpadapter "github.com/applitest/testrunner-mcp/pkg/adapters/http"
	mcpadapter "github.com/applitest/testrunner-mcp/pkg/adapters/mcp"
	"github.com/applitest/testrunner-mcp/pkg/adapters/memory"
	"github.com/applitest/testrunner-mcp/pkg/adapters/playwright"
	"github.com/applitest/testrunner-mcp/pkg/catalog"
	"github.com/applitest/testrunner-mcp/pkg/observability"
	"github.com/applitest/testrunner-mcp/pkg/ports"
	"github.com/applitest/testrunner-mcp/pkg/session"
	"github.com/applitest/testrunner-mcp/pkg/tools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// App is a fully wired server.
type App struct {
	Config     config.Config
	Info       catalog.Info
	Registry   *session.Registry
	Engine     ports.Engine
	Dispatcher *tools.Dispatcher
	Server     *mcpadapter.Server
	Metrics    *observability.Metrics

	gatherer prometheus.Gatherer
	logger   *slog.Logger
	closers  []func(context.Context) error
}

type appOptions struct {
	engine      ports.Engine
	registry    *prometheus.Registry
	traceWriter io.Writer
}

// AppOption configures NewApp.
type AppOption func(*appOptions)

// WithEngine replaces the engine selected by the configuration.
func WithEngine(engine ports.Engine) AppOption {
	return func(o *appOptions) {
		o.engine = engine
	}
}

// WithMetricsRegistry registers metrics on reg instead of the global registry.
func WithMetricsRegistry(reg *prometheus.Registry) AppOption {
	return func(o *appOptions) {
		o.registry = reg
	}
}

// WithTraceWriter sets the span destination when tracing is enabled. Defaults to stderr.
func WithTraceWriter(w io.Writer) AppOption {
	return func(o *appOptions) {
		o.traceWriter = w
	}
}

// NewApp builds the application described by cfg.
func NewApp(cfg config.Config, version string, logger *slog.Logger, opts ...AppOption) (*App, error) {
	o := appOptions{traceWriter: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Server.Version != "" {
		version = cfg.Server.Version
	}
	app := &App{
		Config: cfg,
		Info:   catalog.NewInfo(cfg.Server.Name, version),
		logger: logger,
	}

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	app.gatherer = prometheus.DefaultGatherer
	if o.registry != nil {
		registerer = o.registry
		app.gatherer = o.registry
	}

	var tracer trace.Tracer = noop.NewTracerProvider().Tracer("")
	if cfg.Telemetry.Tracing {
		tp, err := observability.NewTracerProvider(o.traceWriter, app.Info.Name, app.Info.Version)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, tp.Shutdown)
		tracer = observability.Tracer()
	}

	engine := o.engine
	if engine == nil {
		var closer func(context.Context) error
		var err error
		engine, closer, err = newEngine(cfg.Engine, logger)
		if err != nil {
			return nil, err
		}
		if closer != nil {
			app.closers = append(app.closers, closer)
		}
	}

	app.Metrics = observability.NewMetrics(registerer)
	app.Engine = observability.InstrumentEngine(engine, app.Metrics, tracer)
	app.Registry = session.NewRegistry(session.WithLogger(logger))
	observability.RegisterSessionGauge(registerer, app.Registry)

	app.Dispatcher = tools.NewDispatcher(app.Engine, app.Registry, tools.WithLogger(logger))
	app.Server = mcpadapter.NewServer(app.Dispatcher, app.Info,
		mcpadapter.WithLogger(logger),
		mcpadapter.WithServerOptions(
			server.WithToolHandlerMiddleware(observability.ToolMiddleware(app.Metrics, tracer)),
		),
	)

	logger.Debug("Application ready", "engine", cfg.Engine.Kind, "tracing", cfg.Telemetry.Tracing)
	return app, nil
}

func newEngine(cfg config.EngineConfig, logger *slog.Logger) (ports.Engine, func(context.Context) error, error) {
	switch cfg.Kind {
	case config.EngineMemory:
		return memory.New(), nil, nil
	case config.EnginePlaywright:
		e := playwright.New(
			playwright.WithHeadless(cfg.Headless),
			playwright.WithTimeout(cfg.Timeout),
			playwright.WithInstall(cfg.Install),
			playwright.WithLogger(logger),
		)
		return e, func(context.Context) error { return e.Shutdown() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown engine %q", cfg.Kind)
	}
}

// HTTPHandler returns the HTTP surface of the application.
func (a *App) HTTPHandler(baseURL string) http.Handler {
	return httpadapter.NewHandler(a.Server, a.Info,
		httpadapter.WithBaseURL(baseURL),
		httpadapter.WithGatherer(a.gatherer),
		httpadapter.WithLogger(a.logger),
	)
}

// Close releases the engine and flushes traces, in reverse order of creation.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
